package views

import (
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/GrainArc/MandalaRelief/Exporter"
	"github.com/GrainArc/MandalaRelief/Legacy"
	"github.com/GrainArc/MandalaRelief/Mandala"
	"github.com/GrainArc/MandalaRelief/Mesh"
	"github.com/GrainArc/MandalaRelief/Raster"
	"github.com/GrainArc/MandalaRelief/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

type PatternController struct{}

// DefaultChamferHeightMM 顶部倒角默认高度
const DefaultChamferHeightMM = 0.15

// legacyResolution 栅格模式高度图分辨率
const legacyResolution = 1024

func (con *PatternController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (con *PatternController) Index(c *gin.Context) {
	mode := "RASTER"
	if config.UseVectorGenerator {
		mode = "VECTOR"
	}
	c.String(http.StatusOK, "Mandala Relief Backend is Running (%s mode). Use /api/preview or frontend to interact.", mode)
}

// Preview 二维预览图，与三维导出共享同一区域，保证视觉一致
func (con *PatternController) Preview(c *gin.Context) {
	seed := c.DefaultQuery("seed", "default")
	diameter, err := parsePositiveFloat(c.DefaultQuery("diameter", "12.0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diameter参数无效"})
		return
	}
	resolution, err := strconv.Atoi(c.DefaultQuery("resolution", "1024"))
	if err != nil || resolution < 64 || resolution > 2048 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resolution参数无效"})
		return
	}

	var img *image.Gray
	if config.UseVectorGenerator {
		region := Mandala.Generate(seed, diameter)
		img = Raster.Rasterize(region, diameter, resolution)
	} else {
		img = Legacy.GenerateHeightmap(seed, resolution)
	}

	format := c.DefaultQuery("format", "png")
	var data []byte
	var mimeType string
	switch format {
	case "webp":
		data, err = Raster.EncodeWebP(img)
		mimeType = "image/webp"
	default:
		data, err = Raster.EncodePNG(img)
		mimeType = "image/png"
	}
	if err != nil {
		log.Println("预览图编码失败：", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "预览图编码失败"})
		return
	}
	c.Data(http.StatusOK, mimeType, data)
}

// Region 输出生成区域的GeoJSON，供前端调试图案几何
func (con *PatternController) Region(c *gin.Context) {
	seed := c.DefaultQuery("seed", "default")
	diameter, err := parsePositiveFloat(c.DefaultQuery("diameter", "12.0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diameter参数无效"})
		return
	}
	region := Mandala.Generate(seed, diameter)
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(region))
	c.JSON(http.StatusOK, fc)
}

// Preview3D 实时三维预览，返回GLB二进制
func (con *PatternController) Preview3D(c *gin.Context) {
	seed := c.DefaultQuery("seed", "default")
	diameter, err1 := parsePositiveFloat(c.DefaultQuery("diameter", "12.0"))
	height, err2 := parsePositiveFloat(c.DefaultQuery("height", "2.0"))
	reliefDepth, err3 := parsePositiveFloat(c.DefaultQuery("relief_depth", "0.8"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "几何参数无效"})
		return
	}

	scene, err := buildScene(seed, diameter, height, reliefDepth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := writeSceneFile(scene, ".glb", Exporter.WriteGLB)
	if err != nil {
		log.Println("GLB导出失败：", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GLB导出失败"})
		return
	}
	c.Data(http.StatusOK, "model/gltf-binary", data)
}

// Export 导出3MF制造文件
func (con *PatternController) Export(c *gin.Context) {
	var msg ExportMsg
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败"})
		return
	}
	if msg.Diameter == 0 {
		msg.Diameter = 12.0
	}
	if msg.Height == 0 {
		msg.Height = 2.0
	}
	if msg.ReliefDepth == 0 {
		msg.ReliefDepth = 1.0
	}
	if msg.Diameter <= 0 || msg.Height <= 0 || msg.ReliefDepth <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "几何参数无效"})
		return
	}

	scene, err := buildScene(msg.Seed, msg.Diameter, msg.Height, msg.ReliefDepth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := writeSceneFile(scene, ".3mf", Exporter.WriteThreeMF)
	if err != nil {
		log.Println("3MF导出失败：", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "3MF导出失败"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="earring_%s.3mf"`, msg.Seed))
	c.Data(http.StatusOK, "model/3mf", data)
}

// buildScene 统一的场景构建入口：按模式分流矢量/栅格管线
func buildScene(seed string, diameter, height, reliefDepth float64) (Mesh.Scene, error) {
	baseHeight := height - reliefDepth
	if baseHeight <= 0 {
		return nil, fmt.Errorf("总高%.2f必须大于浮雕深度%.2f", height, reliefDepth)
	}

	if config.UseVectorGenerator {
		region := Mandala.Generate(seed, diameter)
		relief := Mesh.ExtrudeWithChamfer(region, reliefDepth, DefaultChamferHeightMM)
		return Mesh.Assemble(diameter/2, baseHeight, relief), nil
	}

	hm := Legacy.GenerateHeightmap(seed, legacyResolution)
	return Legacy.BuildGridScene(hm, diameter, baseHeight, reliefDepth), nil
}

// writeSceneFile 经由临时文件落盘再读回，所有退出路径保证删除
func writeSceneFile(scene Mesh.Scene, suffix string, write func(w io.Writer, s Mesh.Scene) error) ([]byte, error) {
	tmpPath := filepath.Join(os.TempDir(), "mandala_"+uuid.NewString()+suffix)
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	if err = write(f, scene); err != nil {
		f.Close()
		return nil, err
	}
	if err = f.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(tmpPath)
}

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("必须为正数")
	}
	return v, nil
}
