package dialect

import (
	"testing"

	"github.com/freeeve/sqlriver/token"
)

func TestTableAllowsKeyword(t *testing.T) {
	tests := []struct {
		name string
		d    Dialect
		tok  token.Token
		want bool
	}{
		{"ansi rejects straight_join", ANSI, token.STRAIGHT_JOIN, false},
		{"mysql allows straight_join", MySQL, token.STRAIGHT_JOIN, true},
		{"postgres rejects straight_join", Postgres, token.STRAIGHT_JOIN, false},

		{"ansi rejects ilike", ANSI, token.ILIKE, false},
		{"postgres allows ilike", Postgres, token.ILIKE, true},
		{"snowflake allows ilike", Snowflake, token.ILIKE, true},
		{"mysql rejects ilike", MySQL, token.ILIKE, false},

		{"ansi rejects top", ANSI, token.TOP, false},
		{"tsql allows top", TSQL, token.TOP, true},
		{"mysql rejects top", MySQL, token.TOP, false},

		{"ansi rejects rownum", ANSI, token.ROWNUM, false},
		{"oracle allows rownum", Oracle, token.ROWNUM, true},

		{"every dialect allows an ungated keyword", BigQuery, token.SELECT, true},
		{"unknown dialect falls back to ansi", Dialect(99), token.STRAIGHT_JOIN, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Get(tt.d).AllowsKeyword(tt.tok)
			if got != tt.want {
				t.Errorf("Get(%v).AllowsKeyword(%v) = %v, want %v", tt.d, tt.tok, got, tt.want)
			}
		})
	}
}

func TestGetFallsBackToANSI(t *testing.T) {
	got := Get(Dialect(99))
	want := Get(ANSI)
	if got != want {
		t.Errorf("Get(unknown) = %+v, want ANSI table %+v", got, want)
	}
}
