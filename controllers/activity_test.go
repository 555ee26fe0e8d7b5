package controllers

import (
	"testing"
	"time"

	"github.com/aurahealth/aura-backend/model"
)

func intPtr(v int) *int { return &v }

func TestDeriveStatus(t *testing.T) {
	if got := deriveStatus(nil); got != model.ActivityStatusCompleted {
		t.Fatalf("no schedule should mean completed, got %q", got)
	}
	tomorrow := time.Now().Add(24 * time.Hour)
	if got := deriveStatus(&tomorrow); got != model.ActivityStatusScheduled {
		t.Fatalf("scheduledFor should mean scheduled, got %q", got)
	}
}

func TestValidateActivityInput(t *testing.T) {
	valid := activityInput{Type: "meditation", Name: "Morning", Duration: intPtr(10), Difficulty: intPtr(3)}
	if err := validateActivityInput(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []activityInput{
		{Name: "Morning"},                          // missing type
		{Type: "meditation"},                       // missing name
		{Type: "napping", Name: "Nap"},             // unknown type
		{Type: "exercise", Name: "Run", Duration: intPtr(0)},
		{Type: "exercise", Name: "Run", Duration: intPtr(-5)},
		{Type: "exercise", Name: "Run", Difficulty: intPtr(0)},
		{Type: "exercise", Name: "Run", Difficulty: intPtr(11)},
	}
	for i, in := range cases {
		if err := validateActivityInput(in); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, in)
		}
	}

	// Duration and difficulty are optional.
	if err := validateActivityInput(activityInput{Type: "other", Name: "Walk"}); err != nil {
		t.Fatalf("optional fields should be allowed absent: %v", err)
	}
}

func TestPaginationMeta(t *testing.T) {
	p := paginationMeta(1, 10, 10, 25)
	if !p.HasNext || p.TotalPages != 3 || p.TotalCount != 25 || p.CurrentPage != 1 {
		t.Fatalf("unexpected meta for first page: %+v", p)
	}

	// Last page: skip + returned == total, so no next page.
	p = paginationMeta(3, 10, 5, 25)
	if p.HasNext {
		t.Fatalf("last page must not report hasNext: %+v", p)
	}

	p = paginationMeta(1, 10, 0, 0)
	if p.HasNext || p.TotalPages != 0 {
		t.Fatalf("unexpected meta for empty result: %+v", p)
	}

	// Middle page of a longer list.
	p = paginationMeta(2, 5, 5, 12)
	if !p.HasNext || p.TotalPages != 3 {
		t.Fatalf("unexpected meta for middle page: %+v", p)
	}
}
