package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

// 附件预处理参数：最长边不超过800像素，JPEG质量60
const (
	maxImageWidth  = 800
	maxImageHeight = 800
	jpegQuality    = 60
)

// ErrInvalidImage 图片数据无法解析
var ErrInvalidImage = errors.New("图片附件无效")

// InterfaceImageService 定义附件预处理服务接口
//
// 两阶段提交的"准备"阶段：压缩不触碰任何共享状态，
// 失败只影响本次提交，报修入账在其之后独立进行。
type InterfaceImageService interface {
	Prepare(dataURL string) (string, error)
}

// ImageService 压缩报修附件图片
type ImageService struct{}

// NewImageService 创建一个新的附件预处理服务
func NewImageService() InterfaceImageService {
	return &ImageService{}
}

// Prepare 解析base64图片，等比缩放到800x800以内，
// 重新编码为JPEG质量60的data URL
func (s *ImageService) Prepare(dataURL string) (string, error) {
	raw, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImage
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// 等比缩放，长边贴齐上限
	if width > height {
		if width > maxImageWidth {
			height = height * maxImageWidth / width
			width = maxImageWidth
		}
	} else {
		if height > maxImageHeight {
			width = width * maxImageHeight / height
			height = maxImageHeight
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:image/jpeg;base64," + encoded, nil
}

// decodeDataURL 解析 "data:image/...;base64,xxx" 形式的数据
func decodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, ErrInvalidImage
	}
	idx := strings.Index(dataURL, ";base64,")
	if idx == -1 {
		return nil, ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil, ErrInvalidImage
	}
	return raw, nil
}
