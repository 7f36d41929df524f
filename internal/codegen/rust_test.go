package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardonunez-io/apigen/internal/schema"
)

func TestRustRenderer_Params(t *testing.T) {
	s := schema.Schema{Operations: []schema.Operation{{
		Name:        "sendDice",
		Description: "Use this method to send a dice.",
		Params: []schema.Field{
			{Name: "chat_id", Type: "Integer or String", Required: true, Description: "Target chat"},
			{Name: "type", Type: "String", Required: false, Description: "Kind"},
		},
	}}}
	p, err := Build(s)
	require.NoError(t, err)

	out, err := RustRenderer{}.Render(p)
	require.NoError(t, err)

	expect := `#[derive(Debug, Clone, PartialEq)]
pub enum ChatIdEnum {
    IntegerVariant(isize),
    StringVariant(String),
}

/// Use this method to send a dice.
#[derive(Debug, Clone, PartialEq)]
pub struct SendDiceParams {
    /// Target chat
    pub chat_id: ChatIdEnum,
    /// Kind
    pub r#type: Option<String>,
}

impl SendDiceParams {
    pub fn new(chat_id: ChatIdEnum) -> Self {
        Self {
            chat_id,
            r#type: None,
        }
    }

    pub fn set_chat_id(&mut self, chat_id: ChatIdEnum) -> &mut Self {
        self.chat_id = chat_id;
        self
    }

    pub fn set_type(&mut self, r#type: Option<String>) -> &mut Self {
        self.r#type = r#type;
        self
    }

    pub fn chat_id(&self) -> ChatIdEnum {
        self.chat_id.clone()
    }

    pub fn r#type(&self) -> Option<String> {
        self.r#type.clone()
    }
}
`
	assert.Equal(t, expect, out)
}

func TestRustRenderer_Entity(t *testing.T) {
	s := schema.Schema{Entities: []schema.Entity{{
		Name: "Message",
		Fields: []schema.Field{
			{Name: "message_id", Type: "Integer", Required: true},
			{Name: "reply_to_message", Type: "Message", Required: false},
			{Name: "has_protected_content", Type: "True", Required: false},
			{Name: "photo", Type: "Array of PhotoSize", Required: false},
			{Name: "new", Type: "Boolean", Required: true},
		},
	}}}
	p, err := Build(s)
	require.NoError(t, err)

	out, err := RustRenderer{}.Render(p)
	require.NoError(t, err)

	assert.Contains(t, out, "    pub reply_to_message: Option<Box<Message>>,\n")
	assert.Contains(t, out, "    pub photo: Option<Vec<PhotoSize>>,\n")
	assert.Contains(t, out, "    pub fn new(message_id: isize, new: bool) -> Self {\n")
	assert.Contains(t, out, "    pub fn message_id(&self) -> isize {\n        self.message_id\n    }\n")
	assert.Contains(t, out, "    pub fn has_protected_content(&self) -> Option<bool> {\n        self.has_protected_content\n    }\n")
	assert.Contains(t, out, "    pub fn reply_to_message(&self) -> Option<Box<Message>> {\n        self.reply_to_message.clone()\n    }\n")
	assert.Contains(t, out, "    pub fn get_new(&self) -> bool {\n")
	assert.NotContains(t, out, "///")
}

func TestRustRenderer_Empty(t *testing.T) {
	out, err := RustRenderer{}.Render(Plan{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRustIdent(t *testing.T) {
	assert.Equal(t, "r#type", rustIdent("type"))
	assert.Equal(t, "self_", rustIdent("self"))
	assert.Equal(t, "chat_id", rustIdent("chat_id"))
}
