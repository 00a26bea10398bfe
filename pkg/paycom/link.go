package paycom

import (
	"encoding/base64"
	"fmt"
	"strings"
)

type LinkParams struct {
	CheckoutURL string
	MerchantID  string
	AccountKey  string
	OrderID     string
	Amount      int64
	ReturnURL   string
}

// CheckoutLink builds the GET checkout URL: base64 of "m=..;ac.<key>=..;a=..[;c=..]".
func CheckoutLink(p LinkParams) string {
	parts := []string{
		"m=" + p.MerchantID,
		fmt.Sprintf("ac.%s=%s", p.AccountKey, p.OrderID),
		fmt.Sprintf("a=%d", p.Amount),
	}
	if p.ReturnURL != "" {
		parts = append(parts, "c="+p.ReturnURL)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ";")))

	return strings.TrimRight(p.CheckoutURL, "/") + "/" + encoded
}
