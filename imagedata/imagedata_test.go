package imagedata_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/pdf/gohyperion/imagedata"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var _ = Describe("Imagedata", func() {
	It("should pack pixels row by row", func() {
		src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
		src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
		src.SetNRGBA(1, 0, color.NRGBA{G: 128, B: 64, A: 255})

		img, err := FromImage(src, 4, 4, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Width).To(Equal(2))
		Expect(img.Height).To(Equal(1))
		Expect(img.Data).To(Equal([]byte{255, 0, 0, 0, 128, 64}))
	})

	It("should fit large images preserving aspect ratio", func() {
		img, err := FromImage(solid(40, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), 8, 8, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Width).To(Equal(8))
		Expect(img.Height).To(Equal(4))
		Expect(img.Data).To(HaveLen(8 * 4 * 3))
	})

	It("should change brightness", func() {
		img, err := FromImage(solid(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255}), 1, 1, -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Data).To(Equal([]byte{0, 0, 0}))
	})

	It("should reject invalid arguments", func() {
		src := solid(1, 1, color.NRGBA{A: 255})
		_, err := FromImage(src, 0, 1, 0)
		Expect(err).To(HaveOccurred())
		_, err = FromImage(src, 1, 1, 1.5)
		Expect(err).To(HaveOccurred())
	})

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp(``, `gohyperion-image`)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		It("should decode image files", func() {
			path := filepath.Join(dir, `red.png`)
			f, err := os.Create(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(png.Encode(f, solid(2, 2, color.NRGBA{R: 255, A: 255}))).To(Succeed())
			Expect(f.Close()).To(Succeed())

			img, err := Load(path, 2, 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Data).To(Equal([]byte{255, 0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0}))
		})

		It("should fail on missing files", func() {
			_, err := Load(filepath.Join(dir, `missing.png`), 2, 2, 0)
			Expect(err).To(HaveOccurred())
		})
	})
})
