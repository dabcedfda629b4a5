// Package framebuf provides the 1-bit frame buffer of the PCD8544 display controller.
//
// The PCD8544 drives 84x48 pixels. Its display RAM is split into 6 horizontal
// bands of 8 rows each; one byte covers one column of a band, least significant
// bit on top. The whole screen is 84*6 = 504 bytes and is sent to the controller
// as a single run.
//
// Memory layout example for the first band:
//
//	Column: 0     1     2  ...  83
//	Byte:   0     1     2  ...  83
//	Bit 0:  row 0 of each column
//	Bit 7:  row 7 of each column
//
//	Byte 84 holds rows 8-15 of column 0, and so on.
//
// This package provides:
//
// - Frame: a fixed size, bounds checked pixel store with bulk operations
// - image.Image and draw.Image support using the periph image1bit color model
//
// Example usage:
//
//	var f framebuf.Frame
//
//	// Turn a pixel on
//	f.SetPixel(10, 20)
//
//	// Read it back
//	on := f.Pixel(10, 20)
//
//	// Use with standard Go image operations
//	draw.Draw(&f, f.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package framebuf
