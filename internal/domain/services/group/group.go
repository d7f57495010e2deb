// Package group 维护机型分组表：组别 -> 可接受的机型别名列表，
// 以及由分组表派生出的别名索引（精确/规范化/模糊匹配）。
package group

import (
	"fmt"
	"regexp"
	"strings"
)

var groupIDPattern = regexp.MustCompile(`^\d+-\d+$`)

// Group 一个组别及其别名，Aliases[0] 为该组的规范输出型号
type Group struct {
	ID      string   `mapstructure:"id" yaml:"id" json:"id"`
	Aliases []string `mapstructure:"aliases" yaml:"aliases" json:"aliases"`
}

// Table 有序的分组表
type Table []Group

// Validate 校验分组表：组别格式为 "<大组>-<序号>"、组别唯一、别名非空
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t))
	for _, g := range t {
		if !groupIDPattern.MatchString(g.ID) {
			return fmt.Errorf("invalid group id %q (want <major>-<minor>)", g.ID)
		}
		if seen[g.ID] {
			return fmt.Errorf("duplicate group id %q", g.ID)
		}
		seen[g.ID] = true

		usable := 0
		for _, alias := range g.Aliases {
			if strings.TrimSpace(alias) != "" {
				usable++
			}
		}
		if usable == 0 {
			return fmt.Errorf("group %q has no aliases", g.ID)
		}
	}
	return nil
}

// Clone 深拷贝分组表，保证索引构建后不受调用方修改影响
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, g := range t {
		out[i] = Group{ID: g.ID, Aliases: append([]string(nil), g.Aliases...)}
	}
	return out
}

// DefaultTable 内置的手机型号分组
func DefaultTable() Table {
	return Table{
		{ID: "1-1", Aliases: []string{"小米15", "xiaomi15"}},
		{ID: "1-2", Aliases: []string{"一加13", "oneplus13"}},
		{ID: "1-3", Aliases: []string{"oppo find x8", "oppofindx8pro", "findx8pro"}},
		{ID: "1-4", Aliases: []string{"vivo iqoo13", "vivoiqoo13", "iqoo13"}},
		{ID: "1-5", Aliases: []string{"三星s24", "samsungs24"}},

		{ID: "2-1", Aliases: []string{"vivo x200 pro", "vivox200pro", "x200pro"}},
		{ID: "2-2", Aliases: []string{"苹果15", "iphone15"}},
		{ID: "2-3", Aliases: []string{"荣耀magic7", "honormagic7", "magic7"}},
		{ID: "2-4", Aliases: []string{"红米k80pro", "redmik80pro", "k80pro"}},
		{ID: "2-5", Aliases: []string{"华为p40proplus", "huaweip40proplus", "p40proplus"}},

		{ID: "3-1", Aliases: []string{"华为mate60", "huaweimate60", "mate60"}},
		{ID: "3-2", Aliases: []string{"一加ace3", "oneplusace3", "ace3"}},
		{ID: "3-3", Aliases: []string{"小米14", "xiaomi14"}},
		{ID: "3-4", Aliases: []string{"荣耀magic6", "honormagic6", "magic6"}},
		{ID: "3-5", Aliases: []string{"荣耀magicvs3", "honormagicvs3", "magicvs3"}},

		{ID: "4-1", Aliases: []string{"华为p60", "huaweip60", "p60"}},
		{ID: "4-2", Aliases: []string{"华为nova13", "huaweinova13", "nova13"}},
		{ID: "4-3", Aliases: []string{"华为mate50pro", "huaweimate50pro", "mate50pro"}},
		{ID: "4-4", Aliases: []string{"华为nova14pro", "huaweinova14pro", "nova14pro"}},
		{ID: "4-5", Aliases: []string{"华为nova14ultra", "huaweinova14ultra", "nova14ultra"}},

		{ID: "5-1", Aliases: []string{"华为p70pro", "huaweip70pro", "p70pro"}},
		{ID: "5-2", Aliases: []string{"华为matex5", "huaweimatex5", "matex5"}},
		{ID: "5-3", Aliases: []string{"vivo s19 pro", "vivos19pro", "s19pro"}},
		{ID: "5-4", Aliases: []string{"vivo x100 pro", "vivox100pro", "x100pro"}},
		{ID: "5-5", Aliases: []string{"oppo find x7", "oppofindx7", "findx7"}},
		{ID: "5-6", Aliases: []string{"oppo find n3", "oppofindn3", "findn3"}},
	}
}
