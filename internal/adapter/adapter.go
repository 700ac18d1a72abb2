// internal/adapter/adapter.go
package adapter

import (
	"fmt"

	"ContestSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表（依赖interfaces包） ==========
// key 为 config.yaml 中 platforms 段的平台名（小写）
var factoryRegistry = make(map[string]interfaces.Factory)

// Register 供各平台适配器init函数调用，注册工厂函数
func Register(platform string, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("平台%s的工厂函数不能为nil", platform))
	}
	if _, exists := factoryRegistry[platform]; exists {
		logrus.Warnf("平台%s的适配器已注册，将覆盖原有实现", platform)
	}
	factoryRegistry[platform] = factory
}

// GetFactory 获取指定平台的工厂函数
func GetFactory(platform string) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[platform]
	return factory, ok
}

// ListFactories 列出所有已注册工厂函数的平台名
func ListFactories() []string {
	var platforms []string
	for p := range factoryRegistry {
		platforms = append(platforms, p)
	}
	return platforms
}
