package i18n

import "testing"

func TestTranslate(t *testing.T) {
	if got := Translate(LangAr, "dashboard"); got != "لوحة التحكم" {
		t.Fatalf("ar dashboard: %q", got)
	}
	if got := Translate(LangFr, "dashboard"); got != "Tableau de bord" {
		t.Fatalf("fr dashboard: %q", got)
	}
}

func TestTranslateFallsBackToKey(t *testing.T) {
	if got := Translate(LangAr, "no_such_key"); got != "no_such_key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := Translate("de", "dashboard"); got != Translate(DefaultLang, "dashboard") {
		t.Fatalf("unknown language must fall back to default, got %q", got)
	}
}

func TestIsRTL(t *testing.T) {
	if !IsRTL(LangAr) {
		t.Fatal("ar is rtl")
	}
	if IsRTL(LangFr) {
		t.Fatal("fr is not rtl")
	}
}

func TestTableReturnsCopy(t *testing.T) {
	table := Table(LangFr)
	if len(table) == 0 {
		t.Fatal("empty table")
	}
	table["dashboard"] = "mutated"
	if Translate(LangFr, "dashboard") == "mutated" {
		t.Fatal("Table must not expose internal state")
	}
}
