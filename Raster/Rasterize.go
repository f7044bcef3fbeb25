package Raster

import (
	"bytes"
	"image"
	"image/png"
	"log"

	"github.com/GrainArc/MandalaRelief/Mandala"
	"github.com/chai2010/webp"
	"github.com/paulmach/orb"
	"golang.org/x/image/vector"
)

// 区域栅格化：毫米坐标区域映射到单通道像素网格，用于低成本预览

// Rasterize 将以原点为中心、半径diameter/2的区域画进resolution×resolution灰度图。
// 外环按非零环绕规则填充前景，孔洞环反向抵消形成镂空；
// 无效的多边形部分记录警告后跳过，不中断整幅栅格
func Rasterize(region orb.MultiPolygon, diameterMM float64, resolution int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, resolution, resolution))
	if diameterMM <= 0 || resolution <= 0 {
		return img
	}

	radiusMM := diameterMM / 2.0
	scale := (float64(resolution) / 2.0) / radiusMM
	offset := float64(resolution) / 2.0

	for _, poly := range region {
		if len(poly) == 0 || len(poly[0]) < 4 {
			log.Println("警告：跳过无法栅格化的多边形部分")
			continue
		}
		poly = Mandala.OrientPolygon(poly)

		r := vector.NewRasterizer(resolution, resolution)
		for _, ring := range poly {
			open := Mandala.OpenRing(ring)
			if len(open) < 3 {
				continue
			}
			r.MoveTo(float32(open[0][0]*scale+offset), float32(open[0][1]*scale+offset))
			for _, pt := range open[1:] {
				r.LineTo(float32(pt[0]*scale+offset), float32(pt[1]*scale+offset))
			}
			r.ClosePath()
		}
		r.Draw(img, img.Bounds(), image.White, image.Point{})
	}
	return img
}

// EncodePNG 预览图编码为PNG字节流
func EncodePNG(img *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWebP 预览图编码为无损WebP字节流
func EncodeWebP(img *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
