package sender

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"storefront/config"
	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopkgmail "gopkg.in/gomail.v2"
)

type fakeDialer struct{ sent []*gopkgmail.Message }

func (d *fakeDialer) DialAndSend(m ...*gopkgmail.Message) error {
	d.sent = append(d.sent, m...)
	return nil
}

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_placed.html"), []byte(`<p>Hola {{.FullName}}, total {{.Total}}</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_placed.txt"), []byte(`Hola {{.FullName}}, total {{.Total}}`), 0o644))
	return dir
}

func TestSendEmail(t *testing.T) {
	d := &fakeDialer{}
	s := &EmailSender{cfg: &config.NotifierConfig{SMTPFrom: "tienda@example.com", TMPLDir: writeTemplates(t)}, dialer: d}

	err := s.SendEmail(model.EmailNotification{
		To:       "ana@example.com",
		Subject:  "Pedido recibido",
		Template: "order_placed",
		Data:     map[string]any{"FullName": "Ana <script>", "Total": "250.00"},
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Pedido recibido"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ana &lt;script&gt;")
}

func TestBuild_PlainPartNotEscaped(t *testing.T) {
	s := &EmailSender{cfg: &config.NotifierConfig{SMTPFrom: "tienda@example.com", TMPLDir: writeTemplates(t)}, dialer: &fakeDialer{}}

	m, err := s.Build(model.EmailNotification{
		To:       "ana@example.com",
		Subject:  "Pedido recibido",
		Template: "order_placed",
		Data:     map[string]any{"FullName": "O'Brien & Co", "Total": "10.00"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Hola O'Brien & Co, total 10.00")
	assert.Contains(t, out, "O&#39;Brien &amp; Co")
}

func TestSendEmail_MissingTemplate(t *testing.T) {
	d := &fakeDialer{}
	s := &EmailSender{cfg: &config.NotifierConfig{TMPLDir: t.TempDir()}, dialer: d}

	err := s.SendEmail(model.EmailNotification{To: "a@example.com", Template: "nope"})
	assert.Error(t, err)
	assert.Empty(t, d.sent)
}
