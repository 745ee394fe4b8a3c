// seed-catalog populates an empty Firestore project with the demo catalog
// and the about-us document. Existing products are left alone; a product is
// only created when no document with its seed id exists yet.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/domain/content"
	fsstore "github.com/faushop/storefront/internal/storage/firestore"
)

type seedProduct struct {
	id      string
	product catalog.Product
}

// demoProducts is the launch catalog. Names exist in zh-tw only, matching
// the original dataset; other languages resolve through the fallback chain
// until an admin fills them in.
func demoProducts() []seedProduct {
	p := func(id, name string, price int64, imageText, cat string) seedProduct {
		return seedProduct{
			id: id,
			product: catalog.Product{
				Name:     catalog.LocalizedText{catalog.LangZHTW: name},
				Price:    decimal.NewFromInt(price),
				Image:    "https://placehold.co/400x300/333333/FFFFFF?text=" + imageText,
				Category: catalog.Category(cat),
			},
		}
	}
	return []seedProduct{
		p("demo-1", "時尚耳機", 299, "Product+1", string(catalog.CategoryHypnosis)),
		p("demo-2", "智能手錶", 199, "Product+2", string(catalog.CategoryPossession)),
		p("demo-3", "無線充電器", 49, "Product+3", string(catalog.CategoryAgentGear)),
		p("demo-4", "便攜式音箱", 79, "Product+4", string(catalog.CategoryTSF)),
		p("demo-5", "高解析度顯示器", 499, "Product+5", string(catalog.CategoryHypnosis)),
		p("demo-6", "人體工學鍵盤", 129, "Product+6", string(catalog.CategoryPossession)),
		p("demo-7", "迷你無人機", 150, "Product+7", string(catalog.CategoryAgentGear)),
		p("demo-8", "變形眼鏡", 89, "Product+8", string(catalog.CategoryTSF)),
	}
}

// demoContent is the launch about-us copy in all five languages.
func demoContent() content.AppContent {
	return content.AppContent{
		CEOName: catalog.LocalizedText{
			catalog.LangJA:   "黒川 智慧",
			catalog.LangEN:   "Kurokawa Chie",
			catalog.LangZHTW: "黑川 智慧",
			catalog.LangZHCN: "黑川 智慧",
			catalog.LangKO:   "쿠로카와 치에",
		},
		CEOBio: catalog.LocalizedText{
			catalog.LangJA:   "黒川グループの会長である黒川智慧は、革新的なリーダーシップと卓越したビジョンで知られています。彼の指導の下、当社は技術と顧客満足度の新たな基準を確立しました。",
			catalog.LangEN:   "Kurokawa Chie, the Chairman of Kurokawa Group, is known for his innovative leadership and exceptional vision. Under his guidance, the company has set new standards in technology and customer satisfaction.",
			catalog.LangZHTW: "黑川集團董事長黑川智慧以其創新的領導力和卓越的遠見而聞名。在他的指導下，公司在技術和客戶滿意度方面樹立了新的標準。",
			catalog.LangZHCN: "黑川集团董事长黑川智慧以其创新的领导力和卓越的远见而闻名。在他的指导下，公司在技术和客户满意度方面树立了新的标准。",
			catalog.LangKO:   "쿠로카와 그룹의 회장인 쿠로카와 치에는 혁신적인 리더십과 탁월한 비전으로 유명합니다. 그의 지도 아래 회사는 기술과 고객 만족도에서 새로운 기준을 세웠습니다.",
		},
		CompanyBio: catalog.LocalizedText{
			catalog.LangJA:   "黒川グループは、高品質な製品と優れた顧客サービスを提供することに専念する最先端の企業です。私たちは革新を推進し、お客様の生活を豊かにすることを目指しています。",
			catalog.LangEN:   "Kurokawa Group is a cutting-edge enterprise dedicated to providing high-quality products and excellent customer service. We strive to drive innovation and enrich the lives of our customers.",
			catalog.LangZHTW: "黑川集團是一家致力於提供高品質產品和卓越客戶服務的尖端企業。我們致力於推動創新，豐富客戶的生活。",
			catalog.LangZHCN: "黑川集团是一家致力于提供高质量产品和卓越客户服务的尖端企业。我们致力于推动创新，丰富客户的生活。",
			catalog.LangKO:   "쿠로카와 그룹은 고품질 제품과 우수한 고객 서비스를 제공하는 데 전념하는 최첨단 기업입니다. 우리는 혁신을 추진하고 고객의 삶을 풍요롭게 하는 것을 목표로 합니다.",
		},
	}
}

func main() {
	var (
		projectID       string
		credentialsFile string
		collection      string
	)

	flag.StringVar(&projectID, "project", "", "Google Cloud project id (or GOOGLE_CLOUD_PROJECT env)")
	flag.StringVar(&credentialsFile, "credentials", "", "service account key file (or GOOGLE_APPLICATION_CREDENTIALS env)")
	flag.StringVar(&collection, "collection", "products", "product collection name")
	flag.Parse()

	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		slog.Error("project id is required: set --project or GOOGLE_CLOUD_PROJECT")
		os.Exit(1)
	}
	if credentialsFile == "" {
		credentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, projectID, credentialsFile, collection); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, projectID, credentialsFile, collection string) error {
	client, err := fsstore.Connect(ctx, fsstore.Config{
		ProjectID:          projectID,
		CredentialsFile:    credentialsFile,
		ProductsCollection: collection,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	catalogStore := fsstore.NewCatalogStore(client)
	created, skipped := 0, 0
	for _, sp := range demoProducts() {
		ok, err := catalogStore.CreateWithID(ctx, sp.id, sp.product)
		if err != nil {
			if status.Code(err) == codes.Unauthenticated || status.Code(err) == codes.PermissionDenied {
				return err
			}
			slog.Warn("product skipped", "id", sp.id, "error", err)
			continue
		}
		if ok {
			created++
			slog.Info("product created", "id", sp.id)
		} else {
			skipped++
		}
	}

	contentStore := fsstore.NewContentStore(client)
	if err := contentStore.Seed(ctx, demoContent()); err != nil {
		return err
	}

	slog.Info("seed complete", "created", created, "skipped", skipped)
	return nil
}
