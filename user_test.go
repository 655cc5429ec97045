package chatbridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUser_AbsentPhoneBecomesEmptyString(t *testing.T) {
	u, err := decodeUser(json.RawMessage(`{"firstName":"Grace","email":"grace@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "Grace", u.FirstName)
	assert.Equal(t, "", u.PhoneCountryCode)
	assert.Equal(t, "", u.Phone)
}

func TestDecodeUser_FullReply(t *testing.T) {
	u, err := decodeUser(json.RawMessage(`{
		"firstName":"Grace","lastName":"Hopper","email":"grace@example.com",
		"phoneCountryCode":"+1","phone":"5550100"}`))
	require.NoError(t, err)
	assert.Equal(t, User{
		FirstName:        "Grace",
		LastName:         "Hopper",
		Email:            "grace@example.com",
		PhoneCountryCode: "+1",
		Phone:            "5550100",
	}, u)
}

func TestDecodeUser_Malformed(t *testing.T) {
	_, err := decodeUser(json.RawMessage(`"not an object"`))
	require.Error(t, err)
}

func TestUserArgs_AllFieldsPresent(t *testing.T) {
	args := User{FirstName: "Grace"}.args()
	for _, key := range []string{"firstName", "lastName", "email", "phoneCountryCode", "phone"} {
		assert.Contains(t, args, key)
	}
}
