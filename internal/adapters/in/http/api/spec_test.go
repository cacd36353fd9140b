package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/orders",
		"/orders/{orderId}",
		"/orders/{orderId}/status",
		"/orders/vendor/{vendorId}",
		"/orders/user/{userId}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
	assert.Equal(t, "CreateOrder", doc.Paths.Find("/orders").Post.OperationID)
}

func TestRegisterSwaggerDoc(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	require.NoError(t, RegisterSwaggerDoc(doc))

	registered, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.Contains(t, registered, "UpdateOrderStatus")
}
