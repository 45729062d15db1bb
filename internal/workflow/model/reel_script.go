// Package model 定义工作流的输入输出结构
package model

// ReelScriptGenerateInput Reel 脚本生成链的输入。
// BrandJSON / RequestJSON 为已序列化的 JSON 文本，
// ReferenceExamples 为已格式化的参考示例文本块。
type ReelScriptGenerateInput struct {
	BrandJSON         string
	RequestJSON       string
	ReferenceExamples string

	// Provider 为空时使用默认提供商；Model 为空时使用提供商配置的模型
	Provider string
	Model    string
}
