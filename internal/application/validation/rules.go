// Package validation 实现生成脚本的规则校验
package validation

// brandVoiceKeywords 品牌语气到特征词的映射，用于语气对齐检查
var brandVoiceKeywords = map[string][]string{
	"professional": {"expert", "professional", "proven", "certified", "trusted"},
	"friendly":     {"hey", "you", "your", "friend", "together"},
	"energetic":    {"amazing", "incredible", "wow", "awesome", "exciting"},
	"motivational": {"achieve", "succeed", "transform", "believe", "can"},
	"authentic":    {"real", "honest", "genuine", "true", "actual"},
	"casual":       {"yeah", "gonna", "wanna", "cool", "fun"},
}

// actionWords CTA 中期望出现的动作动词
var actionWords = []string{
	"download", "try", "start", "join", "get", "shop", "learn", "discover", "click",
}

// urgencyWords CTA 中期望出现的紧迫感词汇
var urgencyWords = []string{
	"now", "today", "limited", "free", "save",
}
