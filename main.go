package main

import (
	"log"
	"net/http"

	"github.com/GrainArc/MandalaRelief/config"
	"github.com/GrainArc/MandalaRelief/routers"
	"github.com/gin-gonic/gin"
)

// Cors 跨域中间件，允许前端直连后端API
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	if config.UseVectorGenerator {
		log.Println("✓ Using VECTOR-BASED generator (sharp edges, small files)")
	} else {
		log.Println("✓ Using RASTER-BASED generator (legacy mode)")
	}

	r := gin.Default()
	r.Use(Cors())
	routers.PatternRouters(r)

	if err := r.Run(config.Addr()); err != nil {
		log.Fatal("服务启动失败：", err)
	}
}
