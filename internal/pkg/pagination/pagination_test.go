package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func getParamsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	var params *Params
	app.Get("/users", func(c *fiber.Ctx) error {
		params = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	return params
}

func TestGetParams(t *testing.T) {
	tests := []struct {
		target     string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"/users", 1, DefaultLimit, 0},
		{"/users?page=3&limit=10", 3, 10, 20},
		{"/users?page=0&limit=-5", 1, DefaultLimit, 0},
		{"/users?limit=9999", 1, MaxLimit, 0},
	}

	for _, tt := range tests {
		p := getParamsFor(t, tt.target)
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("%s: got page=%d limit=%d offset=%d, want page=%d limit=%d offset=%d",
				tt.target, p.Page, p.Limit, p.Offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)

	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want both true", meta.HasNext, meta.HasPrev)
	}
}
