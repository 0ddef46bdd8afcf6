package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/tangzhangming/ccfront/internal/i18n"
)

// Messages 命令行界面的消息
type Messages struct {
	// 版本信息
	VersionTitle string
	VersionDesc  string

	// 帮助信息
	HelpUsage    string
	HelpCommands string
	HelpOptions  string
	HelpExamples string

	// 命令描述
	CmdTokens  string
	CmdParse   string
	CmdCheck   string
	CmdRules   string
	CmdInit    string
	CmdVersion string
	CmdHelp    string

	// 选项
	OptRules  string
	OptJSON   string
	OptLSP    string
	OptOutput string
	OptDump   string
	OptLang   string

	// 错误信息
	ErrNoInput      string
	ErrReadFile     string
	ErrUnknownCmd   string
	ErrConfig       string
	ErrLogger       string
	ErrWriteFile    string
	ErrGetWorkDir   string
	ErrConfigExists string

	// 成功信息
	SuccessSyntaxOK string
	RulesSummary    string
	InitCreating    string

	// 统计
	Declarations string
	Functions    string
	Objects      string
	Types        string
	Tokens       string
}

// 英文消息
var messagesEN = Messages{
	VersionTitle: "ccfront v%s",
	VersionDesc:  "A C front end: regex-driven NFA lexer and recursive-descent parser",

	HelpUsage:    "Usage:",
	HelpCommands: "Commands:",
	HelpOptions:  "Options:",
	HelpExamples: "Examples:",

	CmdTokens:  "Print the token stream of a C source file",
	CmdParse:   "Parse a C source file and print a summary or the AST",
	CmdCheck:   "Check one or more C source files",
	CmdRules:   "Print the lexer rule table",
	CmdInit:    "Create ccfront.toml in the current directory",
	CmdVersion: "Show version information",
	CmdHelp:    "Show this help message",

	OptRules:  "Rule file (.toml or line format) replacing the built-in C table",
	OptJSON:   "Print the AST as JSON",
	OptLSP:    "Print diagnostics as LSP publishDiagnostics notifications",
	OptOutput: "Output file path",
	OptDump:   "Also print the NFA states",
	OptLang:   "Set language (en/zh)",

	ErrNoInput:      "Error: no input file specified",
	ErrReadFile:     "Error reading file: %v",
	ErrUnknownCmd:   "Unknown command: %s",
	ErrConfig:       "Error loading configuration: %v",
	ErrLogger:       "Error creating logger: %v",
	ErrWriteFile:    "Error writing file: %v",
	ErrGetWorkDir:   "Error getting working directory: %v",
	ErrConfigExists: "Error: %s already exists",

	SuccessSyntaxOK: "✓ %s: syntax OK",
	RulesSummary:    "# %d rules, fingerprint %s",
	InitCreating:    "Creating %s",

	Declarations: "Declarations",
	Functions:    "Functions",
	Objects:      "Objects",
	Types:        "Types",
	Tokens:       "Tokens",
}

// 中文消息
var messagesZH = Messages{
	VersionTitle: "ccfront v%s",
	VersionDesc:  "C 语言前端：基于正则与 NFA 的词法分析器和递归下降语法分析器",

	HelpUsage:    "用法:",
	HelpCommands: "命令:",
	HelpOptions:  "选项:",
	HelpExamples: "示例:",

	CmdTokens:  "输出 C 源文件的 token 序列",
	CmdParse:   "解析 C 源文件，输出摘要或抽象语法树",
	CmdCheck:   "检查一个或多个 C 源文件",
	CmdRules:   "输出词法规则表",
	CmdInit:    "在当前目录生成 ccfront.toml",
	CmdVersion: "显示版本信息",
	CmdHelp:    "显示帮助信息",

	OptRules:  "规则文件（.toml 或逐行格式），替换内置 C 规则表",
	OptJSON:   "以 JSON 输出抽象语法树",
	OptLSP:    "以 LSP publishDiagnostics 通知输出诊断",
	OptOutput: "输出文件路径",
	OptDump:   "同时输出 NFA 状态",
	OptLang:   "设置语言 (en/zh)",

	ErrNoInput:      "错误: 未指定输入文件",
	ErrReadFile:     "读取文件错误: %v",
	ErrUnknownCmd:   "未知命令: %s",
	ErrConfig:       "加载配置错误: %v",
	ErrLogger:       "创建日志错误: %v",
	ErrWriteFile:    "写入文件错误: %v",
	ErrGetWorkDir:   "获取工作目录错误: %v",
	ErrConfigExists: "错误: %s 已存在",

	SuccessSyntaxOK: "✓ %s: 语法正确",
	RulesSummary:    "# 共 %d 条规则，指纹 %s",
	InitCreating:    "创建 %s",

	Declarations: "声明",
	Functions:    "函数",
	Objects:      "对象",
	Types:        "类型",
	Tokens:       "Token",
}

// 当前消息
var msg = messagesEN

// InitLanguage 初始化语言设置
// 优先级: 命令行参数 > 环境变量 CCFRONT_LANG > 配置文件 > 操作系统语言 > 默认英文
func InitLanguage(langOverride, configLang string) {
	switch {
	case langOverride != "":
		setLanguage(langOverride)
	case os.Getenv("CCFRONT_LANG") != "":
		setLanguage(os.Getenv("CCFRONT_LANG"))
	case configLang != "":
		setLanguage(configLang)
	case detectChineseOS():
		setLanguage("zh")
	default:
		setLanguage("en")
	}
}

// setLanguage 同时设置命令行消息与诊断消息的语言
func setLanguage(lang string) {
	i18n.SetLanguageFromString(lang)
	if i18n.GetLanguage() == i18n.LangChinese {
		msg = messagesZH
	} else {
		msg = messagesEN
	}
}

// detectChineseOS 检测操作系统是否为中文环境
func detectChineseOS() bool {
	if runtime.GOOS == "windows" && detectWindowsChinese() {
		return true
	}

	// Unix/Linux/Mac: 检查环境变量
	for _, v := range []string{"LANG", "LANGUAGE", "LC_ALL", "LC_MESSAGES"} {
		if val := strings.ToLower(os.Getenv(v)); val != "" {
			if strings.Contains(val, "zh") || strings.Contains(val, "chinese") {
				return true
			}
		}
	}
	return false
}

// Msg 获取当前消息对象
func Msg() *Messages {
	return &msg
}
