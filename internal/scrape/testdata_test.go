package scrape

const catalogPage = `<html><body>
<h1>Supported foundation models</h1>
<table>
  <thead><tr><th>Provider</th><th>Model name</th><th>Model ID</th><th>Regions supported</th><th>Input modalities</th><th>Output modalities</th></tr></thead>
  <tbody>
    <tr><td>Anthropic</td><td>Claude 3.7 Sonnet</td><td>anthropic.claude-3-7-sonnet-20250219-v1:0</td><td>us-east-1<br/>us-west-2</td><td>Text, Image</td><td>Text, Chat</td></tr>
    <tr><td>Anthropic</td><td>Claude 3.5 Sonnet</td><td>anthropic.claude-3-5-sonnet-20240620-v1:0</td><td>us-east-1</td><td>Text, Image</td><td>Text, Chat</td></tr>
    <tr><td>Amazon</td><td>Nova Canvas</td><td>amazon.nova-canvas-v1:0</td><td>Provisioned throughput only</td><td>Text, Image</td><td>Image</td></tr>
    <tr><td>Meta</td><td>Llama 3.1 405B Instruct</td><td>meta.llama3-1-405b-instruct-v1:0</td><td></td><td>Text</td><td>Text, Chat</td></tr>
    <tr><td colspan="6">Footnote spanning the table</td></tr>
  </tbody>
</table>
</body></html>`

const batchPage = `<html><body>
<table>
  <tr><th>Provider</th><th>Model</th></tr>
  <tr><td>Anthropic</td><td>Claude 3.5 Sonnet</td></tr>
  <tr><td>Meta</td><td>llama3-1-405b</td></tr>
  <tr><td>Mistral</td><td>Mistral Large</td></tr>
</table>
</body></html>`
