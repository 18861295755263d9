package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/products", "/products"},
		{"/cart?x=1", "/cart?x=1"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, safeNext(tt.next, "/"))
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	products := []*model.Product{
		{ID: "llm", Category: "AI"},
		{ID: "vm", Category: "CLOUD"},
		{ID: "gpu", Category: "AI"},
	}

	groups := groupByCategory(products)

	assert.Len(t, groups, 2)
	assert.Equal(t, "CLOUD", groups[0].ID)
	assert.Equal(t, "AI", groups[1].ID)
	assert.Equal(t, "llm", groups[1].Products[0].ID)
	assert.Equal(t, "gpu", groups[1].Products[1].ID)
	for _, c := range categories {
		assert.Empty(t, c.Products)
	}
}

func TestIsCategory(t *testing.T) {
	assert.True(t, isCategory("AI"))
	assert.False(t, isCategory("ai"))
	assert.False(t, isCategory(""))
}

func TestFormStatus(t *testing.T) {
	status, ok := formStatus(auth.NewError(auth.CodeInvalidCredentials, "x"))
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, ok = formStatus(fmt.Errorf("sign up: %w", auth.NewError(auth.CodeEmailInUse, "x")))
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = formStatus(auth.NewError(auth.CodeWeakPassword, "x"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	_, ok = formStatus(errors.New("db down"))
	assert.False(t, ok)
}
