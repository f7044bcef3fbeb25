package routers

import (
	"github.com/GrainArc/MandalaRelief/views"
	"github.com/gin-gonic/gin"
)

func PatternRouters(r *gin.Engine) {
	PatternCtrl := &views.PatternController{}
	r.GET("/health", PatternCtrl.Health)
	r.GET("/", PatternCtrl.Index)
	apiRouter := r.Group("/api")
	{
		apiRouter.GET("/preview", PatternCtrl.Preview)     // 二维预览图
		apiRouter.GET("/region", PatternCtrl.Region)       // 区域GeoJSON调试
		apiRouter.GET("/preview3d", PatternCtrl.Preview3D) // 三维GLB预览
		apiRouter.POST("/export", PatternCtrl.Export)      // 3MF制造文件导出
	}
}
