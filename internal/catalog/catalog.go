package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry 目录项
type Entry struct {
	ID   string `yaml:"id" json:"id"`
	Desc string `yaml:"desc" json:"desc"`
}

// Catalog 上传表单可选的参考目录
type Catalog struct {
	ProjectTemplates []Entry `yaml:"project_templates" json:"project_templates"`
	Customers        []Entry `yaml:"customers" json:"customers"`
	Branches         []Entry `yaml:"branches" json:"branches"`
	TaskTypes        []Entry `yaml:"task_types" json:"task_types"`
}

// Default 内置目录
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load path 为空时返回内置目录，否则读取覆盖文件
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 YAML 目录
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

func contains(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Validate 校验上传字段；空值允许，非空值必须在对应目录中
func (c *Catalog) Validate(projectTemplate, customerID, branchID, taskType string) error {
	checks := []struct {
		field   string
		value   string
		entries []Entry
	}{
		{"project_template", projectTemplate, c.ProjectTemplates},
		{"customer_id", customerID, c.Customers},
		{"branch_id", branchID, c.Branches},
		{"type_value", taskType, c.TaskTypes},
	}
	for _, ch := range checks {
		if ch.value == "" || contains(ch.entries, ch.value) {
			continue
		}
		return fmt.Errorf("%w: unknown %s %q", model.ErrInputRejected, ch.field, ch.value)
	}
	return nil
}
