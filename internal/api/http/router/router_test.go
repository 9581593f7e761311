package router

import (
	"testing"

	"github.com/juthamas/contacts-server/internal/testutil"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	lg := testutil.MakeNoopLogger()

	r := New(nil, lg)
	h := r.Register()
	if h == nil {
		t.Fatalf("expected non-nil handler")
	}
}
