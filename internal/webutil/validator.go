package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"go_5_study_keep/internal/model"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"title":       "タイトル",
	"description": "説明",
	"cards":       "カード",
	"term":        "用語",
	"definition":  "定義",
	"studySetId":  "単語帳ID",
	"mode":        "学習モード",
	"score":       "スコア",
	"action":      "操作",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank: 空白だけの文字列を拒否する
	if err := Validator.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		log.Fatal(err)
	}

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe))
			return t
		})
	}
	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("notblank", "{0}を入力してください。")

	Validator.RegisterTranslation("oneof", Trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0}は[{1}]のいずれかを指定してください。", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", translatedField(fe), fe.Param())
		return t
	})

	// min / max は文字列なら文字数、スライスなら件数、数値なら値として表示する
	for _, tag := range []string{"min", "max"} {
		tag := tag
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			suffix := "以上"
			if tag == "max" {
				suffix = "以下"
			}
			if err := ut.Add(tag+"-chars", "{0}は{1}文字"+suffix+"で入力してください。", true); err != nil {
				return err
			}
			if err := ut.Add(tag+"-count", "{0}は{1}件"+suffix+"必要です。", true); err != nil {
				return err
			}
			return ut.Add(tag+"-value", "{0}は{1}"+suffix+"で指定してください。", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			key := tag + "-value"
			switch fe.Kind() {
			case reflect.String:
				key = tag + "-chars"
			case reflect.Slice, reflect.Array, reflect.Map:
				key = tag + "-count"
			}
			t, _ := ut.T(key, translatedField(fe), fe.Param())
			return t
		})
	}
}

// ValidateStruct はバリデーションを実行し、失敗時は最初のエラーを翻訳した AppError を返します。
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		firstErr := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			firstErr.Translate(Trans),
			firstErr.Field(),
			model.ErrInvalidInput,
		)
	}
	return err
}
