package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(OK(nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true}`, string(b))

	b, err = json.Marshal(OKMessage([]int{}, "Ürün başarıyla eklendi"))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"data":[],"message":"Ürün başarıyla eklendi"}`, string(b))

	b, err = json.Marshal(Fail("NOT_FOUND", "Ürün bulunamadı", nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"code":"NOT_FOUND","message":"Ürün bulunamadı"}`, string(b))
}
