package email

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDevModeLogsInsteadOfSending(t *testing.T) {
	var buf bytes.Buffer
	svc := NewEmailService(SMTPConfig{FromEmail: "noreply@example.com"}, zerolog.New(&buf))

	if err := svc.SendAdmissionStatusEmail("a@example.com", "Asha", "B.Tech", "APP20250101000001", "approved"); err != nil {
		t.Fatalf("dev mode send returned error: %v", err)
	}
	if err := svc.SendContactResponseEmail("a@example.com", "Asha", "Fees", "See the brochure"); err != nil {
		t.Fatalf("dev mode send returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "APP20250101000001") {
		t.Fatalf("expected application number in log, got %q", buf.String())
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := BuildMessage("Admissions", "noreply@example.com", "a@example.com", "Hello", "<p>x</p>")
	wantPrefix := "From: Admissions <noreply@example.com>\r\nTo: a@example.com\r\nSubject: Hello\r\n"
	if !strings.HasPrefix(msg, wantPrefix) {
		t.Fatalf("unexpected headers:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\n<p>x</p>") {
		t.Fatalf("body not separated from headers:\n%q", msg)
	}
}

func TestBodiesEscapeUserInput(t *testing.T) {
	body := AdmissionStatusBody("<script>", "B.Tech & CSE", "APP1", "rejected", "http://portal")
	if strings.Contains(body, "<script>") || !strings.Contains(body, "B.Tech &amp; CSE") {
		t.Fatalf("admission body not escaped: %s", body)
	}

	reply := ContactResponseBody("Asha", "Fees", "line one\nline <two>")
	if !strings.Contains(reply, "line one<br>line &lt;two&gt;") {
		t.Fatalf("contact body not escaped: %s", reply)
	}
}
