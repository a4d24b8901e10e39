package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "latin title",
			title: "How to Grow Your List",
			want:  "how-to-grow-your-list",
		},
		{
			name:  "punctuation collapses to single dash",
			title: "Email -- marketing, 101!",
			want:  "email-marketing-101",
		},
		{
			name:  "cyrillic title transliterated",
			title: "Почтовые рассылки",
			want:  "pochtovye-rassylki",
		},
		{
			name:  "mixed script",
			title: "Django против Go",
			want:  "django-protiv-go",
		},
		{
			name:  "soft sign dropped",
			title: "Январь",
			want:  "yanvar",
		},
		{
			name:  "leading and trailing separators trimmed",
			title: "  ...spaced out...  ",
			want:  "spaced-out",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
