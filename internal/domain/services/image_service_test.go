package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// pngDataURL 生成指定尺寸的纯色PNG data URL
func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("生成测试图片失败: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodePrepared 解出预处理结果中的JPEG图片
func decodePrepared(t *testing.T, dataURL string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("预处理结果应为JPEG data URL, 实际前缀 %q", dataURL[:min(len(dataURL), 30)])
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(prefix):])
	if err != nil {
		t.Fatalf("预处理结果base64解码失败: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("预处理结果JPEG解码失败: %v", err)
	}
	return img
}

func TestPrepareScalesDownLargeImage(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Prepare(pngDataURL(t, 1600, 1200))
	if err != nil {
		t.Fatalf("预处理失败: %v", err)
	}
	img := decodePrepared(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 800 {
		t.Errorf("长边应缩放到800, 实际 %d", bounds.Dx())
	}
	if bounds.Dy() != 600 {
		t.Errorf("短边应等比缩放到600, 实际 %d", bounds.Dy())
	}
}

func TestPrepareScalesPortraitByHeight(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Prepare(pngDataURL(t, 600, 1200))
	if err != nil {
		t.Fatalf("预处理失败: %v", err)
	}
	img := decodePrepared(t, out)
	bounds := img.Bounds()
	if bounds.Dy() != 800 || bounds.Dx() != 400 {
		t.Errorf("竖图应按高度贴齐上限, 实际 %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareKeepsSmallImageSize(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Prepare(pngDataURL(t, 320, 240))
	if err != nil {
		t.Fatalf("预处理失败: %v", err)
	}
	img := decodePrepared(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("小图不应放大, 实际 %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareRejectsNonImage(t *testing.T) {
	svc := NewImageService()

	cases := []string{
		"hello world",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")),
	}
	for _, input := range cases {
		if _, err := svc.Prepare(input); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("非法输入 %q 应返回 ErrInvalidImage, 实际 %v", input[:min(len(input), 30)], err)
		}
	}
}
