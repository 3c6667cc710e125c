package model

type QuestionInputType string

const (
	InputTextOpen       QuestionInputType = "text-open"
	InputTextShort      QuestionInputType = "text-short"
	InputNumeric        QuestionInputType = "numeric"
	InputMultipleChoice QuestionInputType = "multiple-choice"
	InputCheckbox       QuestionInputType = "checkbox"
	InputRadio          QuestionInputType = "radio"
	InputSelect         QuestionInputType = "select"
	InputBoolean        QuestionInputType = "boolean"
	InputDate           QuestionInputType = "date"
	InputEmail          QuestionInputType = "email"
	InputURL            QuestionInputType = "url"
	InputFileUpload     QuestionInputType = "file-upload"
)

// SectionPengusulan is the proposal section. It is exempt from
// required-field validation at submit time.
const SectionPengusulan = "Pengusulan"

// swagger:model Question
type Question struct {
	BaseModel
	Text         string            `gorm:"type:text;not null" json:"text"`
	Description  string            `gorm:"type:text" json:"description"`
	InputType    QuestionInputType `gorm:"size:30;not null" json:"inputType"`
	IsRequired   bool              `gorm:"default:false" json:"isRequired"`
	SectionTitle string            `gorm:"size:255;index" json:"sectionTitle"`
	Subsection   string            `gorm:"size:255" json:"subsection"`
	OrderNumber  int               `gorm:"default:0" json:"orderNumber"`
	CategoryID   *uint             `gorm:"index" json:"categoryId,omitempty"`
	Category     *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Options      []QuestionOption  `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;not null" json:"questionId"`
	Text        string `gorm:"size:500;not null" json:"text"`
	Value       string `gorm:"size:255" json:"value"`
	OrderNumber int    `gorm:"default:0" json:"orderNumber"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
