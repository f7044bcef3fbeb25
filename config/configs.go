package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

var Host string
var Port string
var UseVectorGenerator bool
var MainConfig Config

type Config struct {
	XMLName    xml.Name `xml:"config"`
	Host       string   `xml:"host"`
	Port       string   `xml:"port"`
	VectorMode string   `xml:"vectormode"`
}

func init() {
	// 默认值：矢量模式开启
	Host = "0.0.0.0"
	Port = "5000"
	UseVectorGenerator = true

	xmlFile, err := os.Open("config.xml")
	if err == nil {
		defer xmlFile.Close()
		xmlDecoder := xml.NewDecoder(xmlFile)
		err = xmlDecoder.Decode(&MainConfig)
		if err != nil {
			fmt.Println("Error  decoding  XML:", err)
		} else {
			if MainConfig.Host != "" {
				Host = MainConfig.Host
			}
			if MainConfig.Port != "" {
				Port = MainConfig.Port
			}
			if MainConfig.VectorMode != "" {
				UseVectorGenerator = strings.ToLower(MainConfig.VectorMode) == "true"
			}
		}
	}

	// 环境变量优先级最高
	if env := os.Getenv("USE_VECTOR_GENERATOR"); env != "" {
		UseVectorGenerator = strings.ToLower(env) == "true"
	}
}

// Addr 服务监听地址
func Addr() string {
	return Host + ":" + Port
}
