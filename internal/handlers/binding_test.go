package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Reason string `json:"reason"`
	Amount int    `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "transaction",
			body:     `{"transaction": {"reason": "Abono inicial", "amount": 50000}}`,
			expected: bindTarget{Reason: "Abono inicial", Amount: 50000},
		},
		{
			name:     "Flat Structure",
			key:      "transaction",
			body:     `{"reason": "Compra de telas", "amount": 3500}`,
			expected: bindTarget{Reason: "Compra de telas", Amount: 3500},
		},
		{
			name:     "Missing Key Falls Back to Flat",
			key:      "transaction",
			body:     `{"other": "value", "reason": "Flete", "amount": 800}`,
			expected: bindTarget{Reason: "Flete", Amount: 800},
		},
		{
			name:     "Different Key",
			key:      "advance",
			body:     `{"advance": {"reason": "Caja chica", "amount": 2000}}`,
			expected: bindTarget{Reason: "Caja chica", Amount: 2000},
		},
		{
			name:        "Invalid Flat Content",
			key:         "transaction",
			body:        `{"reason": "Pago", "amount": "invalid"}`,
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "transaction",
			body:        `{"transaction": {"reason": "Pago", "amount": "invalid"}}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "transaction",
			body:        `{"transaction": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
