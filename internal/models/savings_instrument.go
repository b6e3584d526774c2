package models

// InstrumentBucket partitions savings instruments into four fixed categories.
type InstrumentBucket string

const (
	BucketFDRD       InstrumentBucket = "fd_rd"
	BucketNPSPPF     InstrumentBucket = "nps_ppf"
	BucketStocksETFs InstrumentBucket = "stocks_etfs"
	BucketMF         InstrumentBucket = "mf"
)

// Label returns the display name for a bucket, used in report breakdowns.
func (b InstrumentBucket) Label() string {
	switch b {
	case BucketFDRD:
		return "FD/RD"
	case BucketNPSPPF:
		return "NPS/PPF"
	case BucketStocksETFs:
		return "Stocks/ETFs"
	case BucketMF:
		return "Mutual Funds"
	}
	return string(b)
}

// SavingsInstrument is a globally shared category for savings entries.
// Unlike income sources and expense verticals it is not owned by a user;
// names are unique per (name, bucket).
type SavingsInstrument struct {
	Base
	Name   string           `gorm:"not null;uniqueIndex:uq_savings_instruments_name_bucket" json:"name"`
	Bucket InstrumentBucket `gorm:"not null;uniqueIndex:uq_savings_instruments_name_bucket,where:deleted_at IS NULL" json:"bucket"`

	Entries []SavingsEntry `gorm:"foreignKey:InstrumentID" json:"entries,omitempty"`
}
