package i18n

import (
	"os"
	"strings"

	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InitAuto registers all translations and picks the language from the
// system locale, falling back to LANG / LC_ALL
func InitAuto() {
	Register()
	i18n.SetLang(Detect())
}

// Detect returns SimplifiedChinese for zh_CN style locales, English otherwise
func Detect() language.Tag {
	userLocales, _ := locale.GetLocales()
	if len(userLocales) > 0 && strings.HasSuffix(strings.ToUpper(userLocales[0]), "CN") {
		return language.SimplifiedChinese
	}
	if strings.Contains(os.Getenv("LANG"), "zh_CN") || strings.Contains(os.Getenv("LC_ALL"), "zh_CN") {
		return language.SimplifiedChinese
	}
	return language.English
}

// SetLang switches the language from a --lang value. Unknown values keep the detected language.
func SetLang(lang string) {
	switch lang {
	case "cn", "zh":
		i18n.SetLang(language.SimplifiedChinese)
	case "en":
		i18n.SetLang(language.English)
	}
}

// Register registers the English and Chinese catalogue
func Register() {
	for key, zh := range catalogue {
		message.SetString(language.English, key, key)
		message.SetString(language.SimplifiedChinese, key, zh)
	}
	for key, prompt := range prompts {
		message.SetString(language.English, key, prompt[0])
		message.SetString(language.SimplifiedChinese, key, prompt[1])
	}
}

var catalogue = map[string]string{
	"\t%s\t%s\t%s\t%s": "\t%s\t%s\t%s\t%s",
	"[DONE]":           "[完成]",
	"[ERROR]":          "[错误]",
	"Source":           "源文件",
	"Target":           "目标文件",
	"Endpoint":         "上传地址",
	"Status":           "状态",
	"Error: %v\n":      "错误: %v\n",
	"Log file: %s\n":   "日志文件: %s\n",

	"Please input password for %s: ":        "请输入 %s 的密码: ",
	"Resolving credentials for server %s\n": "正在解析服务器 %s 的凭据\n",
	"Uploading %s to %s...\n":               "正在上传 %s 到 %s...\n",
	"Upload completed in %s (%s sent)\n":    "上传完成, 耗时 %s (已发送 %s)\n",

	"Upload skipped: no target file resolved for classifier '%s'\n": "已跳过上传: 分类器 '%s' 未解析到目标文件\n",
	"You can check the log file for details: %s\n":                  "详细信息请查看日志文件: %s\n",
	"Would you like to use AI diagnosis? (y/n): ":                   "是否使用 AI 诊断? (y/n): ",
	"Upload skipped: no target file name\n":                         "已跳过上传: 未指定目标文件名\n",

	"Qwen API Key is required for AI diagnosis. Please set it in config.\n": "AI 诊断需要 Qwen API Key, 请在配置文件中设置。\n",

	"AI diagnosis failed: %v\n":    "AI 诊断失败: %v\n",
	"AI diagnosis suggestion:\n":   "AI 诊断建议:\n",
	"Analyzing log with AI...\n\n": "正在使用 AI 分析日志...\n\n",
	"Reading log file: %s\n":       "正在读取日志文件: %s\n",
	"Question: %s\n\n":             "问题: %s\n\n",
	"AI Answer:\n":                 "AI 回答:\n",

	"Check the source file path and permissions":        "请检查源文件路径和权限",
	"Set --project-name or --upload-url":                "请设置 --project-name 或 --upload-url",
	"Check username and password for the upload server": "请检查上传服务器的用户名和密码",
	"Check network connectivity and TLS settings":       "请检查网络连接和 TLS 设置",
}

// prompts are keyed messages with an English and a Chinese text
var prompts = map[string][2]string{
	"AI_DIAG_PROMPT": {
		"You are an expert in HTTP file release uploads. The following log comes from a tool that uploads a release file to a project hosting service with a multipart/form-data POST and HTTP Basic authentication. Explain the most likely cause of the failure and give concrete steps to fix it.",
		"你是 HTTP 文件发布上传方面的专家。以下日志来自一个通过 multipart/form-data POST 和 HTTP Basic 认证向项目托管服务上传发布文件的工具。请说明最可能的失败原因, 并给出具体的解决步骤。",
	},
	"AI_DIAG_PROMPT_UPLOAD": {
		"You are an expert in HTTP and TLS troubleshooting. The log below shows a failed release upload (multipart/form-data POST with Basic authentication). Look at connection errors, TLS certificate or hostname problems, HTTP status codes and the server response body, then explain the cause and how to fix it.",
		"你是 HTTP 与 TLS 故障排查专家。以下日志显示一次失败的发布上传 (带 Basic 认证的 multipart/form-data POST)。请分析连接错误、TLS 证书或主机名问题、HTTP 状态码以及服务器响应内容, 说明原因和解决方法。",
	},
	"AI_DIAG_PROMPT_CREDENTIALS": {
		"You are an expert in credential management. The log below shows a failure while resolving upload credentials from flags, an INI settings file, environment variables or AWS Secrets Manager. Explain which source failed and how to fix it.",
		"你是凭据管理专家。以下日志显示从命令行参数、INI 配置文件、环境变量或 AWS Secrets Manager 解析上传凭据时失败。请说明哪个来源失败以及如何修复。",
	},
}
