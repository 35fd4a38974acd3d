// Package catalog holds the static sample part dataset used as the final
// discovery fallback tier. It is deliberately small, in-memory, and
// dependency-free so the pipeline can always produce candidates without
// network access.
package catalog

import (
	"strings"

	"bompilot/internal/models"
)

// Entry is one known part in the sample dataset. Category is a short
// label matched as a case-insensitive substring of the requested category
// name (so "MCU" serves "Core MCU / SoC").
type Entry struct {
	Title        string
	Description  string
	Category     string
	Supplier     string
	SupplierURL  string
	Manufacturer string
	MPN          string
	Price        float64
	Currency     string
	ProjectTypes []models.ProjectType
}

var allTypes = []models.ProjectType{models.ProjectTypeBreadboard, models.ProjectTypePCB, models.ProjectTypeCustom}

var entries = []Entry{
	{
		Title:        "RP2040",
		Description:  "Dual-core Cortex-M0+ microcontroller, 264KB SRAM, flexible PIO",
		Category:     "MCU",
		Supplier:     "DigiKey",
		SupplierURL:  "https://www.digikey.com/en/products/detail/raspberry-pi/SC0914-13/14306009",
		Manufacturer: "Raspberry Pi",
		MPN:          "SC0914(13)",
		Price:        1.00,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypePCB, models.ProjectTypeCustom},
	},
	{
		Title:        "STM32F103C8T6",
		Description:  "Cortex-M3 microcontroller, 64KB flash, 72MHz, LQFP48",
		Category:     "MCU",
		Supplier:     "Mouser",
		SupplierURL:  "https://www.mouser.com/ProductDetail/STMicroelectronics/STM32F103C8T6",
		Manufacturer: "STMicroelectronics",
		MPN:          "STM32F103C8T6",
		Price:        4.12,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypePCB, models.ProjectTypeCustom},
	},
	{
		Title:        "Raspberry Pi Pico",
		Description:  "RP2040 development board with headers, breadboard friendly",
		Category:     "MCU",
		Supplier:     "Adafruit",
		SupplierURL:  "https://www.adafruit.com/product/4864",
		Manufacturer: "Raspberry Pi",
		MPN:          "SC0915",
		Price:        5.00,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypeBreadboard},
	},
	{
		Title:        "ESP32-S3-WROOM-1",
		Description:  "Wi-Fi + BLE module, dual-core LX7, 8MB flash",
		Category:     "Connectivity",
		Supplier:     "DigiKey",
		SupplierURL:  "https://www.digikey.com/en/products/detail/espressif-systems/ESP32-S3-WROOM-1-N8/15200089",
		Manufacturer: "Espressif",
		MPN:          "ESP32-S3-WROOM-1-N8",
		Price:        3.40,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
	{
		Title:        "nRF24L01+",
		Description:  "2.4GHz transceiver module, SPI interface",
		Category:     "Connectivity",
		Supplier:     "SparkFun",
		SupplierURL:  "https://www.sparkfun.com/products/691",
		Manufacturer: "Nordic Semiconductor",
		MPN:          "nRF24L01+",
		Price:        2.95,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypeBreadboard, models.ProjectTypeCustom},
	},
	{
		Title:        "AMS1117-3.3",
		Description:  "1A low-dropout linear regulator, 3.3V fixed, SOT-223",
		Category:     "Power",
		Supplier:     "LCSC",
		SupplierURL:  "https://www.lcsc.com/product-detail/C6186.html",
		Manufacturer: "AMS",
		MPN:          "AMS1117-3.3",
		Price:        0.12,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
	{
		Title:        "LM2596S-ADJ",
		Description:  "3A step-down switching regulator, adjustable output",
		Category:     "Power",
		Supplier:     "Mouser",
		SupplierURL:  "https://www.mouser.com/ProductDetail/Texas-Instruments/LM2596S-ADJ",
		Manufacturer: "Texas Instruments",
		MPN:          "LM2596S-ADJ/NOPB",
		Price:        4.95,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypePCB, models.ProjectTypeCustom},
	},
	{
		Title:        "BME280",
		Description:  "Combined temperature, humidity and pressure sensor, I2C/SPI",
		Category:     "Sensing",
		Supplier:     "Adafruit",
		SupplierURL:  "https://www.adafruit.com/product/2652",
		Manufacturer: "Bosch Sensortec",
		MPN:          "BME280",
		Price:        14.95,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
	{
		Title:        "MPU-6050",
		Description:  "6-axis accelerometer and gyroscope, I2C",
		Category:     "Sensing",
		Supplier:     "SparkFun",
		SupplierURL:  "https://www.sparkfun.com/products/11028",
		Manufacturer: "TDK InvenSense",
		MPN:          "MPU-6050",
		Price:        6.50,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypeBreadboard, models.ProjectTypePCB},
	},
	{
		Title:        "0603 Resistor Kit",
		Description:  "SMD resistor assortment, 1% tolerance, 170 values",
		Category:     "Passives",
		Supplier:     "LCSC",
		SupplierURL:  "https://www.lcsc.com/product-detail/resistor-kits.html",
		Manufacturer: "UNI-ROYAL",
		MPN:          "0603-KIT-170",
		Price:        9.80,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypePCB, models.ProjectTypeCustom},
	},
	{
		Title:        "Ceramic Capacitor Kit",
		Description:  "Through-hole ceramic capacitor assortment, 10pF-10uF",
		Category:     "Passives",
		Supplier:     "DigiKey",
		SupplierURL:  "https://www.digikey.com/en/products/detail/kemet/CAP-KIT/445-CERAMIC",
		Manufacturer: "KEMET",
		MPN:          "CER-KIT-300",
		Price:        18.50,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
	{
		Title:        "Solderless Breadboard 830",
		Description:  "830 tie-point solderless breadboard with power rails",
		Category:     "Prototyping",
		Supplier:     "Adafruit",
		SupplierURL:  "https://www.adafruit.com/product/239",
		Manufacturer: "BusBoard",
		MPN:          "BB830",
		Price:        5.95,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypeBreadboard},
	},
	{
		Title:        "Jumper Wire Set",
		Description:  "Male-male/male-female dupont jumper wires, 120pc",
		Category:     "Prototyping",
		Supplier:     "SparkFun",
		SupplierURL:  "https://www.sparkfun.com/products/124",
		Manufacturer: "Generic",
		MPN:          "JW-120",
		Price:        4.50,
		Currency:     "USD",
		ProjectTypes: []models.ProjectType{models.ProjectTypeBreadboard},
	},
	{
		Title:        "USB Logic Analyzer 8ch",
		Description:  "8-channel 24MHz logic analyzer for protocol debugging",
		Category:     "Testing",
		Supplier:     "Amazon",
		SupplierURL:  "https://www.amazon.com/dp/B077LSG5P2",
		Manufacturer: "HiLetgo",
		MPN:          "LA-8CH-24M",
		Price:        12.99,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
	{
		Title:        "DM-0660 Multimeter",
		Description:  "Auto-ranging digital multimeter with continuity buzzer",
		Category:     "Testing",
		Supplier:     "Amazon",
		SupplierURL:  "https://www.amazon.com/dp/B01N9QW620",
		Manufacturer: "AstroAI",
		MPN:          "DM-0660",
		Price:        24.99,
		Currency:     "USD",
		ProjectTypes: allTypes,
	},
}

// MatchCategory returns up to max entries whose category label is a
// case-insensitive substring of the requested category name.
func MatchCategory(name string, max int) []Entry {
	lower := strings.ToLower(name)
	var out []Entry
	for _, e := range entries {
		if strings.Contains(lower, strings.ToLower(e.Category)) {
			out = append(out, e)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// ForProjectType returns up to max entries valid for the given project
// type. This is the last fallback tier: it guarantees a non-empty result
// for every known project type.
func ForProjectType(pt models.ProjectType, max int) []Entry {
	var out []Entry
	for _, e := range entries {
		for _, t := range e.ProjectTypes {
			if t == pt {
				out = append(out, e)
				break
			}
		}
		if len(out) == max {
			break
		}
	}
	return out
}

// Size reports how many entries the sample dataset holds.
func Size() int { return len(entries) }
