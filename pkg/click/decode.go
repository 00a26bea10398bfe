package click

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// field holds a value Click may post as a JSON string or a JSON number.
// Numbers keep their literal text so amounts and signatures match what was signed.
type field string

func (f *field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = field(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("click: expected string or number, got %s", data)
	}
	*f = field(n.String())

	return nil
}

func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClickTransID      field `json:"click_trans_id"`
		ServiceID         field `json:"service_id"`
		ClickPaydocID     field `json:"click_paydoc_id"`
		MerchantTransID   field `json:"merchant_trans_id"`
		MerchantPrepareID field `json:"merchant_prepare_id"`
		Amount            field `json:"amount"`
		Action            field `json:"action"`
		Error             field `json:"error"`
		ErrorNote         field `json:"error_note"`
		SignTime          field `json:"sign_time"`
		SignString        field `json:"sign_string"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Request{
		ClickTransID:      string(raw.ClickTransID),
		ServiceID:         string(raw.ServiceID),
		ClickPaydocID:     string(raw.ClickPaydocID),
		MerchantTransID:   string(raw.MerchantTransID),
		MerchantPrepareID: string(raw.MerchantPrepareID),
		Amount:            string(raw.Amount),
		Action:            string(raw.Action),
		Error:             string(raw.Error),
		ErrorNote:         string(raw.ErrorNote),
		SignTime:          string(raw.SignTime),
		SignString:        string(raw.SignString),
	}

	return nil
}
