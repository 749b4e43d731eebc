package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, count := buildLikeConditionByDialect("sqlite", []string{"v.first_name", " ", "v.phone"})
	if count != 2 {
		t.Fatalf("arg count want 2 got %d", count)
	}
	if condition != "v.first_name LIKE ? OR v.phone LIKE ?" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", []string{"email"})
	if condition != "email ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
}

func TestFullNameExpr(t *testing.T) {
	got := fullNameExpr("e")
	if !strings.Contains(got, "e.first_name") || !strings.Contains(got, "e.last_name") {
		t.Fatalf("alias should prefix columns, got %s", got)
	}
	if strings.Contains(fullNameExpr(""), ".first_name") {
		t.Fatalf("empty alias should not prefix columns")
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%desk%", 3)
	if len(args) != 3 || args[2] != "%desk%" {
		t.Fatalf("unexpected args: %v", args)
	}
}
