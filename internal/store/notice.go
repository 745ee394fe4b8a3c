package store

import "time"

// DefaultNoticeTTL matches the storefront's fixed auto-dismiss delay for
// status banners.
const DefaultNoticeTTL = 3 * time.Second

// NoticeKind classifies a transient user-facing message.
type NoticeKind string

const (
	NoticeOrderPlaced NoticeKind = "order_placed"
	NoticeEmptyCart   NoticeKind = "empty_cart"
	NoticeWriteOK     NoticeKind = "write_ok"
	NoticeWriteFailed NoticeKind = "write_failed"
	NoticeSoftWarning NoticeKind = "soft_warning"
)

// Notice is a short-lived status banner. It is never retried or re-shown;
// reads past ExpiresAt drop it.
type Notice struct {
	Kind      NoticeKind
	Message   string
	PostedAt  time.Time
	ExpiresAt time.Time
}

// noticeMessages holds the per-language banner copy used by the store itself.
var noticeMessages = map[NoticeKind]map[string]string{
	NoticeOrderPlaced: {
		"ja": "ご注文ありがとうございます！", "en": "Thank you for your order!",
		"zh-tw": "感謝您的訂單！", "zh-cn": "感谢您的订单！", "ko": "주문해 주셔서 감사합니다!",
	},
	NoticeEmptyCart: {
		"ja": "カートは空です。", "en": "Your cart is empty.",
		"zh-tw": "您的購物車是空的。", "zh-cn": "您的购物车是空的。", "ko": "장바구니가 비어 있습니다.",
	},
	NoticeWriteOK: {
		"ja": "保存しました。", "en": "Saved.",
		"zh-tw": "已儲存。", "zh-cn": "已保存。", "ko": "저장되었습니다.",
	},
	NoticeWriteFailed: {
		"ja": "保存に失敗しました。", "en": "Save failed.",
		"zh-tw": "儲存失敗。", "zh-cn": "保存失败。", "ko": "저장에 실패했습니다.",
	},
	NoticeSoftWarning: {
		"ja": "一部の翻訳に失敗しました。", "en": "Some translations could not be generated.",
		"zh-tw": "部分翻譯失敗。", "zh-cn": "部分翻译失败。", "ko": "일부 번역에 실패했습니다.",
	},
}
