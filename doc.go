// Package max6921 drives vacuum-fluorescent displays through the Maxim
// MAX6921 20-bit shift register, such as the Russian IV-18 tube with
// its 9 multiplexed grid positions.
//
// The chip hangs off an SPI port plus one GPIO latch line. Writes are
// buffered: digit and segment operations mutate an in-memory buffer
// with no visible effect, and Refresh multiplexes the buffer onto the
// tube one grid at a time. Refresh must be called continuously (or
// from a tight loop) for the display to appear lit; each pass blocks
// for 9 times the configured dwell interval.
//
//	var d max6921.Dev
//	if err := d.Init(nil); err != nil {
//		log.Fatal(err)
//	}
//	defer d.Close()
//	d.WriteString("3.141593")
//	for {
//		if err := d.Refresh(); err != nil {
//			log.Fatal(err)
//		}
//	}
package max6921
