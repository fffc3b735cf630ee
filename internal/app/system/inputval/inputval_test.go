package inputval_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/opshub/internal/app/system/inputval"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSON_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Jane","email":"jane@x.com"}`))
	var s sample
	if err := inputval.DecodeJSON(r, &s); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if s.Name != "Jane" || s.Email != "jane@x.com" {
		t.Errorf("decoded %+v", s)
	}
}

func TestDecodeJSON_MissingField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"jane@x.com"}`))
	var s sample
	err := inputval.DecodeJSON(r, &s)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestDecodeJSON_BadEmail(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Jane","email":"not-an-email"}`))
	var s sample
	if err := inputval.DecodeJSON(r, &s); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Jane","email":"jane@x.com","nmae":"typo"}`))
	var s sample
	if err := inputval.DecodeJSON(r, &s); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	var s sample
	if err := inputval.DecodeJSON(r, &s); err == nil {
		t.Fatal("expected decode error")
	}
}
