package models

import "sort"

// DefaultCurrency 默认货币代码（原版应用面向南非用户）
const DefaultCurrency = "ZAR"

// currencySymbols 货币代码到显示符号的固定映射
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "$",
	"AUD": "$",
	"CHF": "Fr",
	"CNY": "¥",
	"KRW": "₩",
	"ZAR": "R",
}

// CurrencySymbol 返回货币代码对应的显示符号，未知代码返回 false
func CurrencySymbol(code string) (string, bool) {
	symbol, ok := currencySymbols[code]
	return symbol, ok
}

// IsSupportedCurrency 检查货币代码是否在支持列表内
func IsSupportedCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// SupportedCurrencies 返回所有支持的货币代码
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(currencySymbols))
	for code := range currencySymbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
