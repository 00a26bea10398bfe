package click_test

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/stretchr/testify/assert"
)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestSign(t *testing.T) {
	t.Run("prepare excludes merchant_prepare_id", func(t *testing.T) {
		r := click.Request{
			ClickTransID:      "2001",
			ServiceID:         "77",
			MerchantTransID:   "S-1001",
			MerchantPrepareID: "15",
			Amount:            "50000",
			Action:            "0",
			SignTime:          "2024-05-01 10:00:00",
		}

		assert.Equal(t, md5hex("200177secretS-1001500000"+"2024-05-01 10:00:00"), click.Sign(r, "secret"))
	})

	t.Run("complete includes merchant_prepare_id", func(t *testing.T) {
		r := click.Request{
			ClickTransID:      "2001",
			ServiceID:         "77",
			MerchantTransID:   "S-1001",
			MerchantPrepareID: "15",
			Amount:            "50000",
			Action:            "1",
			SignTime:          "2024-05-01 10:00:00",
		}

		assert.Equal(t, md5hex("200177secretS-100115500001"+"2024-05-01 10:00:00"), click.Sign(r, "secret"))
	})
}

func TestVerifySign(t *testing.T) {
	r := click.Request{
		ClickTransID:    "2001",
		ServiceID:       "77",
		MerchantTransID: "S-1001",
		Amount:          "50000",
		Action:          "0",
		SignTime:        "2024-05-01 10:00:00",
	}
	r.SignString = click.Sign(r, "secret")

	assert.True(t, click.VerifySign(r, "secret"))
	assert.False(t, click.VerifySign(r, "other"))

	r.Amount = "50001"
	assert.False(t, click.VerifySign(r, "secret"))
}

func TestPayLink(t *testing.T) {
	testCases := []struct {
		name     string
		params   click.LinkParams
		expected string
	}{
		{
			name:     "default url without return",
			params:   click.LinkParams{ServiceID: "77", MerchantID: "11", Amount: "50000", OrderID: "S-1001"},
			expected: "https://my.click.uz/services/pay?service_id=77&merchant_id=11&amount=50000&transaction_param=S-1001",
		},
		{
			name: "with return url",
			params: click.LinkParams{
				PayURL: "https://my.click.uz/services/pay", ServiceID: "77", MerchantID: "11",
				Amount: "50000", OrderID: "S-1001", ReturnURL: "https://erp.example.uz/paid",
			},
			expected: "https://my.click.uz/services/pay?service_id=77&merchant_id=11&amount=50000&transaction_param=S-1001&return_url=https%3A%2F%2Ferp.example.uz%2Fpaid",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, click.PayLink(tc.params))
		})
	}
}

func TestNote(t *testing.T) {
	assert.Equal(t, "SIGN CHECK FAILED!", click.Note(click.CodeSignCheckFailed))
	assert.Equal(t, "Error in request from click", click.Note(-100))
}

func TestNewResponse(t *testing.T) {
	t.Run("prepare", func(t *testing.T) {
		resp := click.NewResponse(click.Request{ClickTransID: "2001", MerchantTransID: "S-1001", Action: "0"}, click.CodeSuccess).WithID(15)

		assert.Equal(t, "2001", resp.ClickTransID)
		assert.Equal(t, "S-1001", resp.MerchantTransID)
		if assert.NotNil(t, resp.MerchantPrepareID) {
			assert.Equal(t, int64(15), *resp.MerchantPrepareID)
		}
		assert.Nil(t, resp.MerchantConfirmID)
		assert.Equal(t, "Success", resp.ErrorNote)
	})

	t.Run("complete", func(t *testing.T) {
		resp := click.NewResponse(click.Request{Action: "1"}, click.CodeTransactionCanceled)

		if assert.NotNil(t, resp.MerchantConfirmID) {
			assert.Equal(t, int64(0), *resp.MerchantConfirmID)
		}
		assert.Nil(t, resp.MerchantPrepareID)
		assert.Equal(t, -9, resp.Error)
	})
}
