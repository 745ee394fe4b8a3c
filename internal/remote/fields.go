package remote

// Field names of the product and content documents as stored remotely.
// Merge maps passed to Writer.MergeFields and ContentStore.Merge are keyed
// by these names; localized fields nest a per-language-code map under them.
// Values must be encodable by the remote store (strings, numbers, nested
// string maps).
const (
	FieldName                = "name"
	FieldShortDescription    = "shortDescription"
	FieldDetailedDescription = "detailedDescription"
	FieldPrice               = "price"
	FieldImage               = "image"
	FieldCategory            = "category"

	FieldCEOName         = "ceoName"
	FieldCEOBio          = "ceoBio"
	FieldCompanyBio      = "companyBio"
	FieldCompanyVideoURL = "companyVideoUrl"
)
