package adapter

import (
	"sort"

	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// PlatformRegistry 适配器实例注册表：配置中声明的平台才会被初始化
type PlatformRegistry struct {
	cfg    *config.Config
	logger *logrus.Logger
	// 平台名→适配器实例
	adapters map[string]interfaces.PlatformAdapter
}

func NewPlatformRegistry(cfg *config.Config, logger *logrus.Logger) *PlatformRegistry {
	r := &PlatformRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[string]interfaces.PlatformAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 遍历配置中的平台，匹配init注册的工厂函数创建实例
func (r *PlatformRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_platforms", ListFactories()).Info("已注册的平台工厂函数")

	for platformName, platformCfg := range r.cfg.Platforms {
		factory, ok := GetFactory(platformName)
		if !ok {
			r.logger.WithField("platform", platformName).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		adapterIns := factory(&platformCfg, r.logger)
		if adapterIns == nil {
			r.logger.WithField("platform", platformName).Error("工厂函数返回nil适配器实例")
			continue
		}

		r.adapters[platformName] = adapterIns
		r.logger.WithField("platform", platformName).Info("适配器实例初始化成功并加入注册表")
	}

	r.logger.WithField("instance_platforms", len(r.adapters)).Info("最终初始化的适配器实例数量")
}

// Adapters 返回全部已初始化的适配器，按平台名排序保证遍历顺序稳定
func (r *PlatformRegistry) Adapters() []interfaces.PlatformAdapter {
	names := make([]string, 0, len(r.adapters))
	for p := range r.adapters {
		names = append(names, p)
	}
	sort.Strings(names)

	list := make([]interfaces.PlatformAdapter, 0, len(names))
	for _, p := range names {
		list = append(list, r.adapters[p])
	}
	return list
}

// GetPlatformCount 获取已初始化实例的平台数量
func (r *PlatformRegistry) GetPlatformCount() int {
	return len(r.adapters)
}
