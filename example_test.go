package max6921_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	max6921 "github.com/LinuxMainframe/RPiPicoMAX6921lib"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	var d max6921.Dev
	err := d.Init(&max6921.Config{
		Port:            "SPI0.0",
		Speed:           2 * physic.MegaHertz,
		Latch:           gpioreg.ByName("GPIO13"),
		RefreshInterval: 1500 * time.Microsecond,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	if err := d.WriteString("-12.34"); err != nil {
		log.Fatal(err)
	}

	// The tube only stays lit while it is being multiplexed.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := d.Refresh(); err != nil {
			log.Fatal(err)
		}
	}
}
