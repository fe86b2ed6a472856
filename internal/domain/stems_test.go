package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateStems(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single word",
			in:   "globex",
			want: []string{"globex", "globextech", "globexai", "globexsystems", "getglobex"},
		},
		{
			name: "two words",
			in:   "globex widgets",
			want: []string{"globexwidgets", "globex", "widgets", "globex-widgets", "gwidgets"},
		},
		{
			name: "corporate suffix dropped",
			in:   "globex inc",
			want: []string{"globex", "globextech", "globexai", "globexsystems", "getglobex"},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, GenerateStems(Normalize(tc.in)))
		})
	}
}

func TestGenerateStemsThreeWords(t *testing.T) {
	t.Parallel()
	stems := GenerateStems(Normalize("Pied Piper Compression Systems"))
	require.LessOrEqual(t, len(stems), 8)
	require.Contains(t, stems, "piedsystems")
	require.Contains(t, stems, "pied")
	require.Contains(t, stems, "systems")
	require.Contains(t, stems, "ppcs")
	for _, s := range stems {
		require.Greater(t, len(s), 2)
	}
}

func TestGenerateStemsDeterministic(t *testing.T) {
	t.Parallel()
	a := GenerateStems("pied piper compression")
	b := GenerateStems("pied piper compression")
	require.Equal(t, a, b)
}

func TestTLDPriority(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		in    string
		first string
	}{
		{"tech hint", "nimbus software", ".ai"},
		{"ai as whole word", "nimbus ai", ".ai"},
		{"ai inside a word does not count", "nimbus retail", ".com"},
		{"venture hint", "nimbus capital", ".vc"},
		{"government hint", "department of widgets", ".gov"},
		{"default", "nimbus bakery", ".com"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tlds := TLDPriority(Normalize(tc.in))
			require.NotEmpty(t, tlds)
			require.Equal(t, tc.first, tlds[0])
		})
	}
}

func TestGenericPolicy(t *testing.T) {
	t.Parallel()
	p := DefaultGenericPolicy()
	require.True(t, p.IsGeneric("solutions.com"))
	require.True(t, p.IsGeneric("www.group.io"))
	require.False(t, p.IsGeneric("initech.com"))

	custom := GenericPolicy{
		Words:   map[string]struct{}{"widgets": {}},
		Domains: map[string]struct{}{},
	}
	require.True(t, custom.IsGeneric("widgets.com"))
	require.False(t, custom.IsGeneric("solutions.com"))
}
