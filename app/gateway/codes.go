package gateway

import (
	"fmt"
	"strings"
)

// Language selects the localization used for gateway-facing messages. It is
// passed explicitly by callers; the package never reads ambient state.
type Language string

const (
	LanguageVietnamese Language = "vn"
	LanguageEnglish    Language = "en"
)

func NormalizeLanguage(raw string) Language {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LanguageEnglish):
		return LanguageEnglish
	default:
		return LanguageVietnamese
	}
}

var responseCodesVN = map[string]string{
	"00": "Giao dịch thành công",
	"07": "Trừ tiền thành công. Giao dịch bị nghi ngờ (liên quan tới lừa đảo, giao dịch bất thường)",
	"09": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng chưa đăng ký dịch vụ InternetBanking tại ngân hàng",
	"10": "Giao dịch không thành công do: Khách hàng xác thực thông tin thẻ/tài khoản không đúng quá 3 lần",
	"11": "Giao dịch không thành công do: Đã hết hạn chờ thanh toán. Xin quý khách vui lòng thực hiện lại giao dịch",
	"12": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng bị khóa",
	"13": "Giao dịch không thành công do Quý khách nhập sai mật khẩu xác thực giao dịch (OTP)",
	"24": "Giao dịch không thành công do: Khách hàng hủy giao dịch",
	"51": "Giao dịch không thành công do: Tài khoản của quý khách không đủ số dư để thực hiện giao dịch",
	"65": "Giao dịch không thành công do: Tài khoản của Quý khách đã vượt quá hạn mức giao dịch trong ngày",
	"75": "Ngân hàng thanh toán đang bảo trì",
	"79": "Giao dịch không thành công do: Khách hàng nhập sai mật khẩu thanh toán quá số lần quy định",
	"99": "Các lỗi khác",
}

var responseCodesEN = map[string]string{
	"00": "Transaction successful",
	"07": "Money deducted successfully. Transaction is suspected of fraud or unusual activity",
	"09": "Transaction failed: card/account is not registered for InternetBanking at the bank",
	"10": "Transaction failed: card/account information authenticated incorrectly more than 3 times",
	"11": "Transaction failed: payment deadline has expired. Please retry the transaction",
	"12": "Transaction failed: card/account is locked",
	"13": "Transaction failed: incorrect transaction authentication password (OTP)",
	"24": "Transaction failed: customer cancelled the transaction",
	"51": "Transaction failed: insufficient account balance",
	"65": "Transaction failed: daily transaction limit exceeded",
	"75": "The paying bank is under maintenance",
	"79": "Transaction failed: incorrect payment password entered too many times",
	"99": "Other errors",
}

// TranslateResponseCode maps a VNPay response code to a human-readable
// description. Unknown codes resolve to a generic message carrying the raw
// code; the function never fails.
func TranslateResponseCode(code string, lang Language) string {
	table := responseCodesVN
	if lang == LanguageEnglish {
		table = responseCodesEN
	}
	if message, ok := table[code]; ok {
		return message
	}
	if lang == LanguageEnglish {
		return fmt.Sprintf("Unknown error (Code: %s)", code)
	}
	return fmt.Sprintf("Lỗi không xác định (Mã: %s)", code)
}

// MessageNoPaymentInfo describes a redirect carrying no recognizable payment
// parameters, or one referencing an order that does not exist.
func MessageNoPaymentInfo(lang Language) string {
	if lang == LanguageEnglish {
		return "Payment information not found"
	}
	return "Không tìm thấy thông tin thanh toán"
}

// MessageInvalidSignature describes a redirect whose secure hash failed
// verification.
func MessageInvalidSignature(lang Language) string {
	if lang == LanguageEnglish {
		return "Invalid signature"
	}
	return "Chữ ký không hợp lệ"
}
