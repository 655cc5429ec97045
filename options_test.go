package chatbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAQOptions_FilterCriteriaDetection(t *testing.T) {
	assert.False(t, (*FAQOptions)(nil).hasFilterCriteria())
	assert.False(t, NewFAQOptions().hasFilterCriteria())

	for name, opts := range map[string]*FAQOptions{
		"faqTitle":       {FAQTitle: "Help"},
		"contactUsTitle": {ContactUsTitle: "Talk to us"},
		"faqTags":        {FAQTags: []string{"billing"}},
		"contactUsTags":  {ContactUsTags: []string{"refunds"}},
	} {
		assert.True(t, opts.hasFilterCriteria(), "criterion %s", name)
	}
}

func TestFAQOptions_FilterTypeRequiredWithCriteria(t *testing.T) {
	opts := &FAQOptions{FAQTags: []string{"billing"}}
	require.Error(t, opts.validateOptions())

	opts.FilterType = FilterByArticle
	require.NoError(t, opts.validateOptions())
}

func TestFAQOptions_Defaults(t *testing.T) {
	opts := NewFAQOptions()
	assert.True(t, opts.ShowFAQCategoriesAsGrid)
	assert.True(t, opts.ShowContactUsOnFAQScreens)
	assert.False(t, opts.ShowContactUsOnAppBar)
}

func TestConversationOptions_Empty(t *testing.T) {
	assert.True(t, (*ConversationOptions)(nil).isEmpty())
	assert.True(t, (&ConversationOptions{}).isEmpty())
	assert.False(t, (&ConversationOptions{Tags: []string{"vip"}}).isEmpty())
	assert.False(t, (&ConversationOptions{FilteredViewTitle: "VIP"}).isEmpty())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig("app", "key", "domain")
	args := cfg.args()
	require.Len(t, args, 10)
	for key, v := range args {
		if b, ok := v.(bool); ok {
			assert.True(t, b, "toggle %s must default on", key)
		}
	}
}
