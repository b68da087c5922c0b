package i18n

import (
	"testing"

	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestRegisterTranslations(t *testing.T) {
	Register()

	i18n.SetLang(language.SimplifiedChinese)
	assert.Equal(t, "错误: boom\n", i18n.Sprintf("Error: %v\n", "boom"))
	assert.Contains(t, i18n.Sprintf("AI_DIAG_PROMPT_UPLOAD"), "TLS")

	i18n.SetLang(language.English)
	assert.Equal(t, "Error: boom\n", i18n.Sprintf("Error: %v\n", "boom"))
	assert.Contains(t, i18n.Sprintf("AI_DIAG_PROMPT_UPLOAD"), "multipart/form-data")
}

func TestSetLang(t *testing.T) {
	Register()
	SetLang("zh")
	assert.Equal(t, "[完成]", i18n.Sprintf("[DONE]"))
	SetLang("unknown")
	assert.Equal(t, "[完成]", i18n.Sprintf("[DONE]"))
	SetLang("en")
	assert.Equal(t, "[DONE]", i18n.Sprintf("[DONE]"))
}
