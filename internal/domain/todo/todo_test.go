package todo

import "testing"

func strPtr(s string) *string { return &s }

func TestEditTodoRequest_ApplyOnlyPresentFields(t *testing.T) {
	desc := "keep me"
	orig := Todo{ID: 1, UserID: 7, Title: "t1", Description: &desc}

	got := EditTodoRequest{Status: strPtr("completed")}.Apply(orig)

	if got.Title != "t1" {
		t.Fatalf("title changed: %q", got.Title)
	}
	if got.Description == nil || *got.Description != "keep me" {
		t.Fatalf("description changed: %v", got.Description)
	}
	if got.Status == nil || *got.Status != "completed" {
		t.Fatalf("status not applied: %v", got.Status)
	}
	if got.UserID != 7 {
		t.Fatalf("owner changed: %d", got.UserID)
	}
}

func TestEditTodoRequest_Empty(t *testing.T) {
	if !(EditTodoRequest{}).Empty() {
		t.Fatalf("expected empty patch")
	}
	if (EditTodoRequest{Title: strPtr("x")}).Empty() {
		t.Fatalf("expected non-empty patch")
	}
}
