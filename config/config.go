package config

import (
	"EH-Matcher/pkg/system/sysPrint"
	"EH-Matcher/pkg/utils/datastructure"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultManagerAddr     = "127.0.0.1:5301"
	defaultConfigFilePath  = "config.yaml"
	defaultQueryBufferSize = 64 * 1024
	defaultLogLevel        = "info"
	defaultLogFile         = "log.txt"
)

var (
	ConfigFilePath string
)

type MatcherConfig struct {
	ManagerAddr     string   `yaml:"manager-addr"`         // matcher manager 监听地址
	QueryBufferSize int      `yaml:"query-buffer-size"`    // 单条命令（一行）的最大长度
	LogLevel        string   `yaml:"log-level"`            // debug / info / warn / error
	LogFile         string   `yaml:"log-file"`             // 日志文件，为空则只输出到控制台
	Dictionary      []string `yaml:"dictionary,omitempty"` // 启动时预先插入前缀树的单词（小写 a-z）

	DictionaryTrie *datastructure.Trie `yaml:"-"` // 由 Dictionary 构建
}

func init() {
	ConfigFilePath = defaultConfigFilePath
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if args[i] == "-configPath" && i+1 < len(args) {
			ConfigFilePath = args[i+1]
			break
		}
	}
}

// NewMatcherConfig 读取 ConfigFilePath，文件不存在时写入默认配置
func NewMatcherConfig() (*MatcherConfig, error) {
	if _, err := os.Stat(ConfigFilePath); os.IsNotExist(err) {
		file, err := os.Create(ConfigFilePath)
		if err != nil {
			sysPrint.PrintlnSystemMsg("Failed to create config file: " + err.Error())
			return nil, errors.Wrap(err, "create config file")
		}
		defer file.Close()
		return createDefaultConfig(file)
	}
	buf, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		sysPrint.PrintlnSystemMsg("Failed to open config file: " + err.Error())
		return nil, errors.Wrap(err, "read config file")
	}
	return ParseConfig(buf)
}

// ParseConfig 解析 yaml 配置，缺省字段填充默认值，并构建词典前缀树
func ParseConfig(buf []byte) (*MatcherConfig, error) {
	mc := DefaultConfig()
	if err := yaml.Unmarshal(buf, mc); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if mc.QueryBufferSize <= 0 {
		return nil, sysPrint.ErrInvalidQueryBuffer
	}
	trie := datastructure.NewTrie()
	for _, word := range mc.Dictionary {
		if err := trie.Insert(word); err != nil {
			return nil, errors.Wrap(sysPrint.ErrInvalidDictionary, err.Error())
		}
	}
	mc.DictionaryTrie = trie
	return mc, nil
}

func DefaultConfig() *MatcherConfig {
	return &MatcherConfig{
		ManagerAddr:     defaultManagerAddr,
		QueryBufferSize: defaultQueryBufferSize,
		LogLevel:        defaultLogLevel,
		LogFile:         defaultLogFile,
		Dictionary:      nil,
		DictionaryTrie:  datastructure.NewTrie(),
	}
}

func createDefaultConfig(file *os.File) (*MatcherConfig, error) {
	mc := DefaultConfig()
	yamlData, err := yaml.Marshal(mc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal default config")
	}
	if _, err = file.Write(yamlData); err != nil {
		return nil, errors.Wrap(err, "write default config")
	}
	return mc, nil
}
