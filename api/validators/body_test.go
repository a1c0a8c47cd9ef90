package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/mickytroxxy/bluegrass/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=18"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(request(`{"name":"Thabo","email":"thabo@example.com","age":30}`), &payload)
	if err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.Name != "Thabo" || payload.Age != 30 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(request(`{"name":`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(request(`{"name":"T","email":"t@example.com","age":30,"extra":1}`), &payload)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(request(`{"name":"","email":"nope","age":3}`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field map got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("name: got %q", details["name"])
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("email: got %q", details["email"])
	}
	if details["age"] != "must be at least 18" {
		t.Fatalf("age: got %q", details["age"])
	}
}
