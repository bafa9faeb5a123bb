package notify

import "testing"

func TestExcludedByBots(t *testing.T) {
	tests := []struct {
		name     string
		wikitext string
		want     bool
	}{
		{
			name:     "no template at all",
			wikitext: "== Welcome ==\nHi there!",
			want:     false,
		},
		{
			name:     "nobots excludes everyone",
			wikitext: "{{nobots}}\n== Welcome ==",
			want:     true,
		},
		{
			name:     "nobots with spacing",
			wikitext: "{{ nobots }}",
			want:     true,
		},
		{
			name:     "bare bots allows everyone",
			wikitext: "{{bots}}",
			want:     false,
		},
		{
			name:     "deny all",
			wikitext: "{{bots|deny=all}}",
			want:     true,
		},
		{
			name:     "deny this bot by name",
			wikitext: "{{bots|deny=Muninnbot}}",
			want:     true,
		},
		{
			name:     "deny this bot case-insensitively",
			wikitext: "{{bots|deny=muninnbot}}",
			want:     true,
		},
		{
			name:     "deny another bot only",
			wikitext: "{{bots|deny=SineBot}}",
			want:     false,
		},
		{
			name:     "deny list containing this bot",
			wikitext: "{{bots|deny=SineBot, Muninnbot, OtherBot}}",
			want:     true,
		},
		{
			name:     "allow all",
			wikitext: "{{bots|allow=all}}",
			want:     false,
		},
		{
			name:     "allow list including this bot",
			wikitext: "{{bots|allow=Muninnbot}}",
			want:     false,
		},
		{
			name:     "allow list excluding this bot",
			wikitext: "{{bots|allow=SineBot}}",
			want:     true,
		},
		{
			name:     "template buried in page content",
			wikitext: "== Archive ==\nOld stuff.\n{{bots|deny=Muninnbot}}\nMore text.",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExcludedByBots(tt.wikitext, "Muninnbot"); got != tt.want {
				t.Errorf("ExcludedByBots(%q) = %v, want %v", tt.wikitext, got, tt.want)
			}
		})
	}
}
