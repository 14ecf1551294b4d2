package controller

import "testing"

func TestBestAnswerKeywordScoring(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"what file formats are supported?", "CSV (.csv) and Excel (.xlsx, .xls) files are supported."},
		{"gmail authentication failed again", "Use a Gmail App Password (requires 2-Step Verification). Generate at https://myaccount.google.com/apppasswords."},
		{"my emails land in spam", "Ask recipients to mark as Not Spam, avoid spammy content, and use a domain with SPF/DKIM if possible."},
		{"how do I get a bcc copy as owner", "Set MAIL_OWNER_EMAIL in the environment to receive BCC copies."},
	}
	for _, tc := range cases {
		if got := BestAnswer(tc.query); got != tc.want {
			t.Errorf("BestAnswer(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestBestAnswerFallback(t *testing.T) {
	if got := BestAnswer("completely unrelated question"); got != helpFallbackAnswer {
		t.Errorf("fallback = %q", got)
	}
}
