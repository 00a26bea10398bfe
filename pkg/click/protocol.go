package click

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	ActionPrepare  = 0
	ActionComplete = 1
)

// ErrorInsufficientFunds is the error value Click sends on complete when the payer ran out of money.
const ErrorInsufficientFunds = -5017

const DefaultPayURL = "https://my.click.uz/services/pay"

// Request carries the fields Click posts on both prepare and complete calls.
type Request struct {
	ClickTransID      string `json:"click_trans_id" form:"click_trans_id" validate:"required"`
	ServiceID         string `json:"service_id" form:"service_id" validate:"required"`
	ClickPaydocID     string `json:"click_paydoc_id" form:"click_paydoc_id"`
	MerchantTransID   string `json:"merchant_trans_id" form:"merchant_trans_id" validate:"required"`
	MerchantPrepareID string `json:"merchant_prepare_id" form:"merchant_prepare_id"`
	Amount            string `json:"amount" form:"amount" validate:"required"`
	Action            string `json:"action" form:"action" validate:"required"`
	Error             string `json:"error" form:"error"`
	ErrorNote         string `json:"error_note" form:"error_note"`
	SignTime          string `json:"sign_time" form:"sign_time" validate:"required"`
	SignString        string `json:"sign_string" form:"sign_string" validate:"required"`
}

type Response struct {
	ClickTransID      string `json:"click_trans_id"`
	MerchantTransID   string `json:"merchant_trans_id"`
	MerchantPrepareID *int64 `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID *int64 `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}

// Sign computes md5(click_trans_id + service_id + secret_key + merchant_trans_id +
// [merchant_prepare_id] + amount + action + sign_time). The prepare id only takes
// part in complete calls.
func Sign(r Request, secretKey string) string {
	var b strings.Builder
	b.WriteString(r.ClickTransID)
	b.WriteString(r.ServiceID)
	b.WriteString(secretKey)
	b.WriteString(r.MerchantTransID)
	if r.Action == strconv.Itoa(ActionComplete) {
		b.WriteString(r.MerchantPrepareID)
	}
	b.WriteString(r.Amount)
	b.WriteString(r.Action)
	b.WriteString(r.SignTime)

	sum := md5.Sum([]byte(b.String()))

	return hex.EncodeToString(sum[:])
}

func VerifySign(r Request, secretKey string) bool {
	expected := Sign(r, secretKey)

	return subtle.ConstantTimeCompare([]byte(strings.ToLower(r.SignString)), []byte(expected)) == 1
}

type LinkParams struct {
	PayURL     string
	ServiceID  string
	MerchantID string
	Amount     string
	OrderID    string
	ReturnURL  string
}

func PayLink(p LinkParams) string {
	base := p.PayURL
	if base == "" {
		base = DefaultPayURL
	}

	link := fmt.Sprintf("%s?service_id=%s&merchant_id=%s&amount=%s&transaction_param=%s",
		base,
		url.QueryEscape(p.ServiceID),
		url.QueryEscape(p.MerchantID),
		url.QueryEscape(p.Amount),
		url.QueryEscape(p.OrderID),
	)
	if p.ReturnURL != "" {
		link += "&return_url=" + url.QueryEscape(p.ReturnURL)
	}

	return link
}

// NewResponse echoes the correlation fields of r. Complete calls carry
// merchant_confirm_id, prepare calls merchant_prepare_id.
func NewResponse(r Request, code int) Response {
	resp := Response{
		ClickTransID:    r.ClickTransID,
		MerchantTransID: r.MerchantTransID,
		Error:           code,
		ErrorNote:       Note(code),
	}

	var id int64
	if r.Action == strconv.Itoa(ActionComplete) {
		resp.MerchantConfirmID = &id
	} else {
		resp.MerchantPrepareID = &id
	}

	return resp
}

func (r Response) WithID(id int64) Response {
	if r.MerchantConfirmID != nil {
		r.MerchantConfirmID = &id
	} else {
		r.MerchantPrepareID = &id
	}

	return r
}
