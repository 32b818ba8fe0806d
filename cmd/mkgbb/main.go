//go:build !tinygo

// Command mkgbb builds or inspects a flash image carrying the GBB
// policy block the payload reads at boot.
//
//	mkgbb -out bootui.flash -flags 0x1
//	mkgbb -in bootui.flash -show
package main

import (
	"flag"
	"fmt"
	"os"

	"bootui/hal"
)

const (
	defaultFlashSize = 512 * 1024
	eraseBlockBytes  = 4096
)

func main() {
	out := flag.String("out", "bootui.flash", "Output flash image path.")
	in := flag.String("in", "", "Existing image to inspect (with -show).")
	show := flag.Bool("show", false, "Print the GBB flags of an existing image.")
	flags := flag.Uint("flags", 0, "Policy flag word to embed.")
	size := flag.Uint("size", defaultFlashSize, "Flash image size in bytes.")
	flag.Parse()

	if *show {
		path := *in
		if path == "" {
			path = *out
		}
		if err := showImage(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := writeImage(*out, uint32(*size), hal.PolicyFlag(*flags)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeImage(path string, size uint32, flags hal.PolicyFlag) error {
	if size == 0 || size%eraseBlockBytes != 0 {
		return fmt.Errorf("mkgbb: size %d not a multiple of the %d erase block", size, eraseBlockBytes)
	}

	img := make([]byte, size)
	for i := range img {
		img[i] = 0xFF
	}
	copy(img[hal.GBBOffset:], hal.EncodeGBB(flags))

	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("mkgbb: write %s: %w", path, err)
	}
	fmt.Printf("%s: %d bytes, gbb flags %#x\n", path, size, uint32(flags))
	return nil
}

func showImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("mkgbb: open %s: %w", path, err)
	}
	defer f.Close()

	var buf [hal.GBBSize]byte
	if _, err := f.ReadAt(buf[:], hal.GBBOffset); err != nil {
		return fmt.Errorf("mkgbb: read %s: %w", path, err)
	}
	flags, err := hal.ParseGBB(buf[:])
	if err != nil {
		return fmt.Errorf("mkgbb: %s: %w", path, err)
	}
	fmt.Printf("%s: gbb flags %#x\n", path, uint32(flags))
	return nil
}
