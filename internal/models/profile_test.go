package models

import "testing"

func TestBlogURL(t *testing.T) {
	tests := []struct {
		blog string
		want string
	}{
		{"", ""},
		{"   ", "   "},
		{"https://example.com/blog", "https://example.com/blog"},
		{"HTTP://Example.com", "HTTP://Example.com"},
		{"example.com", "https://example.com"},
		{"//cdn.example.com/x", "https://cdn.example.com/x"},
		{"  octo.blog  ", "https://octo.blog"},
	}
	for _, tt := range tests {
		p := UserProfile{Blog: tt.blog}
		if got := p.BlogURL(); got != tt.want {
			t.Errorf("BlogURL(%q) = %q, want %q", tt.blog, got, tt.want)
		}
		if p.HasBlog() != (tt.want != "") {
			t.Errorf("HasBlog(%q) = %v", tt.blog, p.HasBlog())
		}
	}
}

func TestRepositoriesURL(t *testing.T) {
	tests := []struct {
		name string
		p    UserProfile
		want string
	}{
		{"html url", UserProfile{Login: "octocat", HTMLURL: "https://github.com/octocat/"}, "https://github.com/octocat?tab=repositories"},
		{"login only", UserProfile{Login: "octocat"}, "https://github.com/octocat?tab=repositories"},
		{"empty", UserProfile{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.RepositoriesURL(); got != tt.want {
				t.Errorf("RepositoriesURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayNameAndInitials(t *testing.T) {
	tests := []struct {
		p            UserProfile
		wantName     string
		wantInitials string
	}{
		{UserProfile{Login: "octocat", Name: "The Octocat"}, "The Octocat", "TO"},
		{UserProfile{Login: "octocat", Name: "  "}, "octocat", "O"},
		{UserProfile{Login: "x", Name: "Ada Byron Lovelace"}, "Ada Byron Lovelace", "AB"},
		{UserProfile{Name: "émile zola"}, "émile zola", "ÉZ"},
		{UserProfile{}, "", "?"},
	}
	for _, tt := range tests {
		if got := tt.p.DisplayName(); got != tt.wantName {
			t.Errorf("DisplayName() = %q, want %q", got, tt.wantName)
		}
		if got := tt.p.Initials(); got != tt.wantInitials {
			t.Errorf("Initials() = %q, want %q", got, tt.wantInitials)
		}
	}
}
