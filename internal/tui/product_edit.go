// File: internal/tui/product_edit.go
package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ericlagergren/decimal"
	"github.com/google/uuid"

	"bazaar-tui/internal/api"
	"bazaar-tui/internal/converter"
	"bazaar-tui/internal/forms"
	"bazaar-tui/internal/model"
	"bazaar-tui/internal/pkg/xerrors"
)

// editFormReadyMsg 编辑表单异步装配完成
type editFormReadyMsg struct {
	form       *forms.Form
	categories []model.Category
	loadErr    error
}

// productEditPage 商品创建/编辑页。
// productID 为零值时是创建，否则表单默认值从现有商品异步装载。
type productEditPage struct {
	app *App

	productID uuid.UUID
	ready     bool
	form      *forms.Form
	controls  []formControl
	focus     int
}

func newProductEditPage(app *App, productID uuid.UUID) *productEditPage {
	return &productEditPage{app: app, productID: productID}
}

func (p *productEditPage) Init() tea.Cmd {
	app := p.app
	productID := p.productID
	return func() tea.Msg {
		ctx := context.Background()

		catResp, err := app.deps.Client.ListProductCategories(ctx, 1, 100)
		if err != nil {
			return errMsg{err: err}
		}
		categories, err := converter.ConvertProductCategories(catResp)
		if err != nil {
			return errMsg{err: err}
		}

		schema := forms.NewSchema().
			Field("name", forms.FieldRule{Label: "Name", Required: true}).
			Field("description", forms.FieldRule{Label: "Description"}).
			Field("price", forms.FieldRule{Label: "Price", Required: true}).
			Field("stock", forms.FieldRule{Label: "Stock"}).
			Field("category", forms.FieldRule{Label: "Category", Required: true, UUID: true}).
			Field("image", forms.FieldRule{Label: "Image file"}).
			Refine("price", []string{"price"},
				"Price must be a valid amount, e.g. 12.99",
				func(values forms.Values) bool {
					raw, _ := values["price"].(string)
					if raw == "" {
						return true // required 规则另行报错
					}
					_, ok := new(decimal.Big).SetString(raw)
					return ok
				})

		var defaultsFunc func(ctx context.Context) (forms.Values, error)
		if productID != uuid.Nil {
			defaultsFunc = func(ctx context.Context) (forms.Values, error) {
				resp, err := app.deps.Client.GetProduct(ctx, productID)
				if err != nil {
					return nil, err
				}
				product, err := converter.ConvertProduct(resp)
				if err != nil {
					return nil, err
				}
				values := forms.Values{
					"name":     product.Name,
					"price":    product.Price.String(),
					"stock":    int(product.StockQuantity),
					"category": product.CategoryID.String(),
				}
				if product.Description != nil {
					values["description"] = *product.Description
				}
				return values, nil
			}
		}

		form, loadErr := forms.New(ctx, forms.Config{
			Schema:        schema,
			Language:      app.lang,
			DefaultValues: forms.Values{"stock": 0},
			DefaultsFunc:  defaultsFunc,
			OnSubmit:      p.saveProduct,
		})
		return editFormReadyMsg{form: form, categories: categories, loadErr: loadErr}
	}
}

// saveProduct 上传图片（如有）后创建或更新商品
func (p *productEditPage) saveProduct(ctx context.Context, values forms.Values) error {
	name, _ := values["name"].(string)
	price, _ := values["price"].(string)
	category, _ := values["category"].(string)
	stock, _ := values["stock"].(int)

	req := api.SaveProductRequest{
		Name:          name,
		Price:         price,
		StockQuantity: int32(stock),
		CategoryID:    category,
	}
	if description, _ := values["description"].(string); description != "" {
		req.Description = &description
	}

	if imagePath, _ := values["image"].(string); imagePath != "" {
		if p.app.deps.Uploader == nil {
			return xerrors.FromCode(xerrors.CodeStorageConfigMissing)
		}
		file, err := os.Open(imagePath)
		if err != nil {
			return xerrors.NewUploadError(imagePath, err)
		}
		defer file.Close()

		contentType := mime.TypeByExtension(filepath.Ext(imagePath))
		url, err := p.app.deps.Uploader.Upload(ctx, filepath.Base(imagePath), contentType, file)
		if err != nil {
			return err
		}
		req.ImageURL = &url
	}

	if p.productID == uuid.Nil {
		_, err := p.app.deps.Client.CreateProduct(ctx, req)
		return err
	}
	_, err := p.app.deps.Client.UpdateProduct(ctx, p.productID, req)
	return err
}

func (p *productEditPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case editFormReadyMsg:
		p.ready = true
		p.form = msg.form
		p.buildControls(msg.categories)
		cmds := []tea.Cmd{p.controls[0].Focus()}
		if msg.loadErr != nil {
			cmds = append(cmds, flash("Could not load product details, starting from blank values.", true))
		}
		return tea.Batch(cmds...)

	case tea.KeyMsg:
		if !p.ready {
			if msg.String() == "esc" {
				return goTo(RouteAccount)
			}
			return nil
		}
		switch msg.String() {
		case "esc":
			return goTo(RouteAccount)
		case "tab", "shift+tab":
			return p.moveFocus(msg.String() == "tab")
		case "ctrl+s":
			return p.submit()
		case "enter":
			if p.focus == len(p.controls)-1 {
				return p.submit()
			}
			// 下拉和多行文本的回车留给控件处理
			switch p.controls[p.focus].(type) {
			case *forms.SelectField, *forms.TextareaField:
			default:
				return p.moveFocus(true)
			}
		}
	}
	if !p.ready {
		return nil
	}
	return p.controls[p.focus].Update(msg)
}

func (p *productEditPage) buildControls(categories []model.Category) {
	state := p.form.State()

	options := make([]forms.SelectOption, 0, len(categories))
	for _, category := range categories {
		options = append(options, forms.SelectOption{
			Value: category.ID.String(),
			Label: category.Name,
		})
	}

	p.controls = []formControl{
		forms.NewTextField(state, "name", forms.FieldOptions{Label: "Name", Width: 40}),
		forms.NewTextareaField(state, "description", forms.TextareaOptions{
			Label:  "Description",
			Width:  60,
			Height: 3,
		}),
		forms.NewTextField(state, "price", forms.FieldOptions{Label: "Price", Placeholder: "12.99", Width: 16}),
		forms.NewNumberField(state, "stock", forms.FieldOptions{Label: "Stock", Width: 8}),
		forms.NewSelectField(state, "category", "Category", options),
		forms.NewTextField(state, "image", forms.FieldOptions{
			Label:       "Image file",
			Placeholder: "/path/to/photo.png",
			Width:       60,
		}),
	}
}

func (p *productEditPage) moveFocus(forward bool) tea.Cmd {
	p.controls[p.focus].Blur()
	if forward {
		p.focus = (p.focus + 1) % len(p.controls)
	} else {
		p.focus = (p.focus - 1 + len(p.controls)) % len(p.controls)
	}
	return p.controls[p.focus].Focus()
}

func (p *productEditPage) submit() tea.Cmd {
	if p.form.State().IsSubmitting() {
		return nil
	}
	form := p.form
	creating := p.productID == uuid.Nil
	return func() tea.Msg {
		if err := form.Submit(context.Background()); err != nil {
			var appErr *xerrors.AppError
			if errors.As(err, &appErr) && appErr.Code == xerrors.CodeFormValidationFailed {
				return nil
			}
			return errMsg{err: err}
		}
		if creating {
			return flashMsg{text: "Product created.", isError: false}
		}
		return flashMsg{text: "Product updated.", isError: false}
	}
}

func (p *productEditPage) View() string {
	var b strings.Builder
	title := "Edit Product"
	if p.productID == uuid.Nil {
		title = "New Product"
	}
	b.WriteString(p.app.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	if !p.ready {
		for i := 0; i < p.app.deps.Config.LoadingSkeletons; i++ {
			b.WriteString(p.app.styles.Skeleton.Render(skeletonRow))
			b.WriteString("\n")
		}
		return b.String()
	}

	for _, control := range p.controls {
		b.WriteString(control.View())
		b.WriteString("\n\n")
	}
	if p.form.State().IsSubmitting() {
		b.WriteString(p.app.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	}
	b.WriteString(p.app.styles.Help.Render(fmt.Sprintf(
		"tab next field · ctrl+s save · esc back · %s",
		p.app.styles.Muted.Render("image upload is optional"),
	)))
	return b.String()
}
