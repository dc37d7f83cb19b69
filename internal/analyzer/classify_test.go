package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
)

func TestClassifyProvider_Google(t *testing.T) {
	b := analyzer.ClassifyProvider([]string{"aspmx.l.google.com"}, nil)

	assert.Equal(t, analyzer.LabelGoogle, b.Email)
	assert.Equal(t, analyzer.LabelGoogle, b.Productivity)
	assert.Equal(t, map[string][]string{"mx": {"aspmx.l.google.com"}}, b.Evidence)
}

func TestClassifyProvider_GoogleViaTXT(t *testing.T) {
	b := analyzer.ClassifyProvider(nil, []string{"google-site-verification=abc123"})
	assert.Equal(t, analyzer.LabelGoogle, b.Email)
	assert.Equal(t, map[string][]string{"txt": {"google-site-verification=abc123"}}, b.Evidence)
}

func TestClassifyProvider_Microsoft(t *testing.T) {
	mx := []string{"mail.protection.outlook.com"}
	txt := []string{"v=spf1 include:spf.protection.outlook.com"}
	b := analyzer.ClassifyProvider(mx, txt)

	assert.Equal(t, analyzer.LabelMicrosoft, b.Email)
	assert.Equal(t, analyzer.LabelMicrosoft, b.Productivity)
	assert.Equal(t, map[string][]string{"mx": mx, "txt": txt}, b.Evidence)
}

func TestClassifyProvider_Both(t *testing.T) {
	b := analyzer.ClassifyProvider(
		[]string{"aspmx.l.google.com", "example-com.mail.protection.outlook.com"},
		nil,
	)
	assert.Equal(t, analyzer.LabelBoth, b.Email)
}

func TestClassifyProvider_CaseInsensitive(t *testing.T) {
	b := analyzer.ClassifyProvider([]string{"ASPMX.L.GOOGLE.COM"}, nil)
	assert.Equal(t, analyzer.LabelGoogle, b.Email)
}

func TestClassifyProvider_Empty(t *testing.T) {
	b := analyzer.ClassifyProvider(nil, nil)

	assert.Equal(t, analyzer.LabelOther, b.Email)
	assert.Equal(t, analyzer.LabelOther, b.Productivity)
	assert.Empty(t, b.Evidence)
	assert.NotNil(t, b.Evidence, "evidence is an empty map, not nil")
}

func TestClassifyProvider_EvidenceIndependentOfRules(t *testing.T) {
	// Records that match no rule still appear as evidence.
	mx := []string{"10 mail.selfhosted.example"}
	txt := []string{"hello"}
	b := analyzer.ClassifyProvider(mx, txt)

	assert.Equal(t, analyzer.LabelOther, b.Email)
	assert.Equal(t, map[string][]string{"mx": mx, "txt": txt}, b.Evidence)
}
