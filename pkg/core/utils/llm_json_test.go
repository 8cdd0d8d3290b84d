package utils

import "testing"

type kpiEnvelope struct {
	Resumo string `json:"resumo"`
	KPIs   struct {
		TotalVendas float64 `json:"totalVendas"`
	} `json:"kpis"`
}

func TestSmartParse_StrictJSON(t *testing.T) {
	var out kpiEnvelope
	err := SmartParse(`{"resumo":"ok","kpis":{"totalVendas":300}}`, &out)
	if err != nil {
		t.Fatalf("Expected strict JSON to parse, got %v", err)
	}
	if out.Resumo != "ok" || out.KPIs.TotalVendas != 300 {
		t.Errorf("Unexpected decode: %+v", out)
	}
}

func TestSmartParse_FencedJSON(t *testing.T) {
	input := "```json\n{\"resumo\": \"fenced\", \"kpis\": {\"totalVendas\": 42}}\n```"
	var out kpiEnvelope
	if err := SmartParse(input, &out); err != nil {
		t.Fatalf("Expected fenced JSON to be repaired, got %v", err)
	}
	if out.Resumo != "fenced" || out.KPIs.TotalVendas != 42 {
		t.Errorf("Unexpected decode: %+v", out)
	}
}

func TestSmartParse_TrailingComma(t *testing.T) {
	var out kpiEnvelope
	if err := SmartParse(`{"resumo": "lenient", "kpis": {"totalVendas": 7,},}`, &out); err != nil {
		t.Fatalf("Expected trailing commas to be tolerated, got %v", err)
	}
	if out.Resumo != "lenient" {
		t.Errorf("Unexpected decode: %+v", out)
	}
}

func TestSmartParse_Garbage(t *testing.T) {
	var out kpiEnvelope
	if err := SmartParse("not even close", &out); err == nil {
		t.Error("Expected an error for unparseable input")
	}
}

func TestCleanMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```markdown\n# Título\n```", "# Título"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\ntexto\n```", "texto"},
		{"  sem fence  ", "sem fence"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := CleanMarkdown(tc.in); got != tc.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Resumo\n\n- item") {
		t.Error("Expected plain markdown to validate")
	}
}
