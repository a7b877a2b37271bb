package domain

import (
	"time"
)

// Activation flag values shared by the soft-deletable VC rows.
const (
	ActivateYes = "Y"
	ActivateNo  = "N"
)

// Vc is the per-project voice-conversion pipeline. It shares its key with the
// owning project and is created lazily on first use.
type Vc struct {
	ProSeq  int64    `gorm:"column:pro_seq;primaryKey" json:"pro_seq"`
	Project *Project `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProSeq;references:ProSeq" json:"project,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Vc) TableName() string { return "vc" }

// VcSrcFile is one ordered source row of a pipeline. RowOrder is assigned as
// source-count+1 at creation and survives soft deletion.
type VcSrcFile struct {
	SrcSeq int64 `gorm:"column:src_seq;primaryKey;autoIncrement" json:"src_seq"`
	ProSeq int64 `gorm:"column:pro_seq;not null;index" json:"pro_seq"`
	Vc     *Vc   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProSeq;references:ProSeq" json:"vc,omitempty"`

	RowOrder   int    `gorm:"column:row_order;not null" json:"row_order"`
	FileName   string `gorm:"column:file_name;not null" json:"file_name"`
	FileURL    string `gorm:"column:file_url;not null" json:"file_url"`
	FileLength int64  `gorm:"column:file_length" json:"file_length"`
	FileSize   int64  `gorm:"column:file_size" json:"file_size"`
	Extension  string `gorm:"column:extension" json:"extension"`
	Activate   string `gorm:"column:activate;type:char(1);not null;default:'Y'" json:"activate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VcSrcFile) TableName() string { return "vc_src_file" }

type VcTrgFile struct {
	TrgSeq int64 `gorm:"column:trg_seq;primaryKey;autoIncrement" json:"trg_seq"`
	ProSeq int64 `gorm:"column:pro_seq;not null;index" json:"pro_seq"`
	Vc     *Vc   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProSeq;references:ProSeq" json:"vc,omitempty"`

	FileName   string `gorm:"column:file_name;not null" json:"file_name"`
	FileURL    string `gorm:"column:file_url;not null" json:"file_url"`
	FileLength int64  `gorm:"column:file_length" json:"file_length"`
	FileSize   int64  `gorm:"column:file_size" json:"file_size"`
	Extension  string `gorm:"column:extension" json:"extension"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VcTrgFile) TableName() string { return "vc_trg_file" }

// VcResultFile is a converted output for one source row. Re-runs accumulate;
// the row with the greatest res_seq is the current result.
type VcResultFile struct {
	ResSeq  int64      `gorm:"column:res_seq;primaryKey;autoIncrement" json:"res_seq"`
	SrcSeq  int64      `gorm:"column:src_seq;not null;index" json:"src_seq"`
	SrcFile *VcSrcFile `gorm:"constraint:OnDelete:CASCADE;foreignKey:SrcSeq;references:SrcSeq" json:"src_file,omitempty"`

	FileName   string `gorm:"column:file_name;not null" json:"file_name"`
	FileURL    string `gorm:"column:file_url;not null" json:"file_url"`
	FileLength int64  `gorm:"column:file_length" json:"file_length"`
	FileSize   int64  `gorm:"column:file_size" json:"file_size"`
	Extension  string `gorm:"column:extension" json:"extension"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VcResultFile) TableName() string { return "vc_result_file" }

// VcText is a text annotation for one source row. Length is the character
// count of Comment, recomputed on every write.
type VcText struct {
	VtSeq   int64      `gorm:"column:vt_seq;primaryKey;autoIncrement" json:"vt_seq"`
	SrcSeq  int64      `gorm:"column:src_seq;not null;index" json:"src_seq"`
	SrcFile *VcSrcFile `gorm:"constraint:OnDelete:CASCADE;foreignKey:SrcSeq;references:SrcSeq" json:"src_file,omitempty"`

	Comment string `gorm:"column:comment;type:text" json:"comment"`
	Length  int    `gorm:"column:length" json:"length"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (VcText) TableName() string { return "vc_text" }
