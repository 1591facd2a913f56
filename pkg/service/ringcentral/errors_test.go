package ringcentral_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ringsync/pkg/service/ringcentral"
)

func faultResponse(status int, contentType string) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", contentType)
	return &http.Response{StatusCode: status, Header: header}
}

func TestClassifyFault(t *testing.T) {
	t.Run("mixed case not-found text classifies as NotFound", func(t *testing.T) {
		body := []byte(`{"detail":"User resource with id 42 Is Not Found."}`)
		err := ringcentral.ClassifyFault(faultResponse(404, "application/json"), body)
		gt.Error(t, err).Is(ringcentral.ErrNotFound)
	})

	t.Run("duplicate email text classifies as AlreadyExists", func(t *testing.T) {
		body := []byte(`{"message":"Extension e-mail already exists on account."}`)
		err := ringcentral.ClassifyFault(faultResponse(409, "application/json"), body)
		gt.Error(t, err).Is(ringcentral.ErrAlreadyExists)
	})

	t.Run("detail takes precedence over message", func(t *testing.T) {
		body := []byte(`{"message":"something unrelated","detail":"resource is not found"}`)
		err := ringcentral.ClassifyFault(faultResponse(404, "application/json"), body)
		gt.Error(t, err).Is(ringcentral.ErrNotFound)
	})

	t.Run("unmatched text classifies as unknown fault", func(t *testing.T) {
		body := []byte(`{"detail":"internal provisioning failure"}`)
		err := ringcentral.ClassifyFault(faultResponse(500, "application/json"), body)
		gt.Error(t, err)
		gt.Bool(t, isTyped(err)).False()
	})

	t.Run("non-JSON content type fails generically", func(t *testing.T) {
		body := []byte(`<html>Bad Gateway</html>`)
		err := ringcentral.ClassifyFault(faultResponse(502, "text/html"), body)
		gt.Error(t, err)
		gt.Bool(t, isTyped(err)).False()
	})

	t.Run("null body fails generically", func(t *testing.T) {
		err := ringcentral.ClassifyFault(faultResponse(500, "application/json"), []byte(`null`))
		gt.Error(t, err)
		gt.Bool(t, isTyped(err)).False()
	})

	t.Run("empty object body fails generically", func(t *testing.T) {
		err := ringcentral.ClassifyFault(faultResponse(500, "application/json"), []byte(`{}`))
		gt.Error(t, err)
		gt.Bool(t, isTyped(err)).False()
	})

	t.Run("malformed JSON fails generically", func(t *testing.T) {
		err := ringcentral.ClassifyFault(faultResponse(500, "application/json"), []byte(`{broken`))
		gt.Error(t, err)
		gt.Bool(t, isTyped(err)).False()
	})
}

// isTyped reports whether the error matched one of the substring rules
func isTyped(err error) bool {
	return errors.Is(err, ringcentral.ErrNotFound) || errors.Is(err, ringcentral.ErrAlreadyExists)
}
